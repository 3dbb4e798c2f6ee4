package dynopath

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	count, err := c.Compile(access(schema.Type(), "Count"))
	if err != nil {
		t.Fatal(err)
	}

	expr, err := c.Render("$ > ? AND begins_with ('Message', ?)", count, 1, "foo")
	if err != nil {
		t.Fatal(err)
	}
	const want = "#ATTR3 > :val0 AND begins_with (#ATTR2, :val1)"
	if expr.Text != want {
		t.Errorf("bad rendered text: %v ≠ %v", expr.Text, want)
	}
	if diff := cmp.Diff(map[string]string{"#ATTR3": "Count", "#ATTR2": "Message"}, expr.Names); diff != "" {
		t.Errorf("bad names (-want +got):\n%s", diff)
	}
	if av, ok := expr.Values[":val1"].(*types.AttributeValueMemberS); !ok || av.Value != "foo" {
		t.Errorf("bad :val1: %#v", expr.Values[":val1"])
	}
}

func TestRenderValueDedup(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	expr, err := c.Render("'Count' = ? OR 'Count' = ?", 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if expr.Text != "#ATTR3 = :val0 OR #ATTR3 = :val0" {
		t.Errorf("equal values must share an alias: %v", expr.Text)
	}
	if len(expr.Values) != 1 {
		t.Errorf("bad value count: %v ≠ 1", len(expr.Values))
	}
}

func TestRenderQuotedChain(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	expr, err := c.Render("'Profile'.'Bio' = ?", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if expr.Text != "#ATTR5.#ATTR10 = :val0" {
		t.Errorf("bad chained text: %v", expr.Text)
	}
	if expr.Names["#ATTR10"] != "Bio" {
		t.Errorf("missing nested registration: %v", expr.Names)
	}
}

func TestRenderExprArgument(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	// A lambda argument compiles in place.
	expr, err := c.Render("attribute_exists($)", access(schema.Type(), "Profile", "Bio"))
	if err != nil {
		t.Fatal(err)
	}
	if expr.Text != "attribute_exists(#ATTR5.#ATTR10)" {
		t.Errorf("bad text: %v", expr.Text)
	}
}

func TestRenderErrors(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	if _, err := c.Render("$ = ?"); err == nil {
		t.Error("missing arguments: want error but got nil")
	}
	if _, err := c.Render("'Count' = ?", 1, 2); err == nil {
		t.Error("too many arguments: want error but got nil")
	}
	if _, err := c.Render("'Nope' = ?", 1); err == nil {
		t.Error("unknown quoted name: want error but got nil")
	}
	if _, err := c.Render("$ = ?", "not an attribute", 1); err == nil {
		t.Error("bad $ argument: want error but got nil")
	}
	if _, err := c.Render("'Unclosed", 1); err == nil {
		t.Error("lex error: want error but got nil")
	}
}

func TestBindInputs(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	expr, err := c.Render("'Count' > ?", 10)
	if err != nil {
		t.Fatal(err)
	}

	var query dynamodb.QueryInput
	if err := expr.BindQueryFilter(&query); err != nil {
		t.Fatal(err)
	}
	if query.FilterExpression == nil || *query.FilterExpression != expr.Text {
		t.Error("filter expression not bound")
	}
	if query.ExpressionAttributeNames["#ATTR3"] != "Count" {
		t.Errorf("names not merged: %v", query.ExpressionAttributeNames)
	}

	// Binding a second expression merges instead of clobbering.
	more, err := c.Render("'Message' = ?", "hi")
	if err != nil {
		t.Fatal(err)
	}
	var update dynamodb.UpdateItemInput
	if err := more.BindUpdateCondition(&update); err != nil {
		t.Fatal(err)
	}
	set, err := c.Render("SET 'Count' = ?", 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := set.BindUpdate(&update); err != nil {
		t.Fatal(err)
	}
	if update.ExpressionAttributeNames["#ATTR2"] != "Message" || update.ExpressionAttributeNames["#ATTR3"] != "Count" {
		t.Errorf("merge lost names: %v", update.ExpressionAttributeNames)
	}
	if update.ConditionExpression == nil || update.UpdateExpression == nil {
		t.Error("both expressions must be bound")
	}
}

func TestBindCollision(t *testing.T) {
	a := &Expression{
		Text:  "#ATTR1 = :val0",
		Names: map[string]string{"#ATTR1": "Foo"},
		Values: map[string]types.AttributeValue{
			":val0": &types.AttributeValueMemberS{Value: "a"},
		},
	}
	b := &Expression{
		Text:  "#ATTR1 = :val0",
		Names: map[string]string{"#ATTR1": "Bar"}, // same alias, different name
		Values: map[string]types.AttributeValue{
			":val0": &types.AttributeValueMemberS{Value: "a"},
		},
	}
	var in dynamodb.PutItemInput
	if err := a.BindPutCondition(&in); err != nil {
		t.Fatal(err)
	}
	if err := b.BindPutCondition(&in); err == nil {
		t.Error("alias collision: want error but got nil")
	}
}

func TestBindProjection(t *testing.T) {
	schema := widgetSchema(t)
	c := NewCompiler(schema)

	count, err := c.Compile(access(schema.Type(), "Count"))
	if err != nil {
		t.Fatal(err)
	}
	bio, err := c.Compile(access(schema.Type(), "Profile", "Bio"))
	if err != nil {
		t.Fatal(err)
	}

	var query dynamodb.QueryInput
	if err := BindProjection(&query, count, bio); err != nil {
		t.Fatal(err)
	}
	if query.ProjectionExpression == nil || *query.ProjectionExpression != "#ATTR3, #ATTR5.#ATTR10" {
		t.Errorf("bad projection: %v", query.ProjectionExpression)
	}
	if query.ExpressionAttributeNames["#ATTR10"] != "Bio" {
		t.Errorf("projection names not registered: %v", query.ExpressionAttributeNames)
	}
}
