package sinks

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-456")}, nil
}

func sampleResult() Result {
	return NewResult("get_customer", "GET", "http://localhost:8080/customers/1", 200, json.RawMessage(`{"id":1}`))
}

func TestSQSSinkEmitSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	sink := &sqsSink{id: "queue", queueURL: "https://example.com/queue", client: client, log: noopLogger{}}

	if err := sink.Emit(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["operation"]
	if !ok || aws.ToString(attr.StringValue) != "get_customer" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("operation attribute missing or wrong: %#v", attr)
	}
	if got := aws.ToString(client.input.MessageAttributes["status_code"].StringValue); got != "200" {
		t.Fatalf("status_code attribute = %q", got)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"body":{"id":1}`) {
		t.Fatalf("MessageBody missing body: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSSinkEmitError(t *testing.T) {
	sink := &sqsSink{id: "queue", queueURL: "q", client: &fakeSQSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := sink.Emit(context.Background(), sampleResult()); err == nil {
		t.Fatalf("expected error from Emit")
	}
}

func TestSNSSinkEmitSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{id: "topic", topicARN: "arn:aws:sns:::topic", client: client, log: noopLogger{}}

	if err := sink.Emit(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	if got := aws.ToString(client.input.MessageAttributes["method"].StringValue); got != "GET" {
		t.Fatalf("method attribute = %q", got)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"operation":"get_customer"`) {
		t.Fatalf("Message missing operation: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSSinkEmitError(t *testing.T) {
	sink := &snsSink{id: "topic", topicARN: "t", client: &fakeSNSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := sink.Emit(context.Background(), sampleResult()); err == nil {
		t.Fatalf("expected error from Emit")
	}
}
