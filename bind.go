package dynopath

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// The Bind helpers copy a rendered Expression onto SDK request inputs.
// They only fill fields; issuing the request stays the caller's job.
// Merging into an input that already carries placeholders is additive
// and fails on alias collision, so independently rendered expressions
// (each from its own compilation) can share a request.

func mergeNames(dst map[string]string, src map[string]string) (map[string]string, error) {
	if len(src) == 0 {
		return dst, nil
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for alias, name := range src {
		if prev, ok := dst[alias]; ok && prev != name {
			return nil, fmt.Errorf("dynopath: name placeholder collision on %s: %q vs %q", alias, prev, name)
		}
		dst[alias] = name
	}
	return dst, nil
}

func mergeValues(dst, src map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if len(src) == 0 {
		return dst, nil
	}
	if dst == nil {
		dst = make(map[string]types.AttributeValue, len(src))
	}
	for alias, av := range src {
		if prev, ok := dst[alias]; ok && avKey(prev) != avKey(av) {
			return nil, fmt.Errorf("dynopath: value placeholder collision on %s", alias)
		}
		dst[alias] = av
	}
	return dst, nil
}

// BindUpdate sets in's update expression and merges the alias maps.
func (e *Expression) BindUpdate(in *dynamodb.UpdateItemInput) error {
	names, err := mergeNames(in.ExpressionAttributeNames, e.Names)
	if err != nil {
		return err
	}
	values, err := mergeValues(in.ExpressionAttributeValues, e.Values)
	if err != nil {
		return err
	}
	in.UpdateExpression = aws.String(e.Text)
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = values
	return nil
}

// BindUpdateCondition sets in's condition expression and merges the alias maps.
func (e *Expression) BindUpdateCondition(in *dynamodb.UpdateItemInput) error {
	names, err := mergeNames(in.ExpressionAttributeNames, e.Names)
	if err != nil {
		return err
	}
	values, err := mergeValues(in.ExpressionAttributeValues, e.Values)
	if err != nil {
		return err
	}
	in.ConditionExpression = aws.String(e.Text)
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = values
	return nil
}

// BindPutCondition sets in's condition expression and merges the alias maps.
func (e *Expression) BindPutCondition(in *dynamodb.PutItemInput) error {
	names, err := mergeNames(in.ExpressionAttributeNames, e.Names)
	if err != nil {
		return err
	}
	values, err := mergeValues(in.ExpressionAttributeValues, e.Values)
	if err != nil {
		return err
	}
	in.ConditionExpression = aws.String(e.Text)
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = values
	return nil
}

// BindDeleteCondition sets in's condition expression and merges the alias maps.
func (e *Expression) BindDeleteCondition(in *dynamodb.DeleteItemInput) error {
	names, err := mergeNames(in.ExpressionAttributeNames, e.Names)
	if err != nil {
		return err
	}
	values, err := mergeValues(in.ExpressionAttributeValues, e.Values)
	if err != nil {
		return err
	}
	in.ConditionExpression = aws.String(e.Text)
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = values
	return nil
}

// BindQueryFilter sets in's filter expression and merges the alias maps.
func (e *Expression) BindQueryFilter(in *dynamodb.QueryInput) error {
	names, err := mergeNames(in.ExpressionAttributeNames, e.Names)
	if err != nil {
		return err
	}
	values, err := mergeValues(in.ExpressionAttributeValues, e.Values)
	if err != nil {
		return err
	}
	in.FilterExpression = aws.String(e.Text)
	in.ExpressionAttributeNames = names
	in.ExpressionAttributeValues = values
	return nil
}

// BindProjection sets a projection expression built from compiled paths.
func BindProjection(in *dynamodb.QueryInput, compiled ...*Compiled) error {
	w := newWriter()
	text := ""
	for i, c := range compiled {
		if i > 0 {
			text += ", "
		}
		text += w.WriteAttribute(c.ID)
	}
	names, err := mergeNames(in.ExpressionAttributeNames, w.names)
	if err != nil {
		return err
	}
	in.ProjectionExpression = aws.String(text)
	in.ExpressionAttributeNames = names
	return nil
}
