package dynamoflavor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/goforj/flavors/flavorcore"
	"github.com/goforj/flavors/flavortest"
)

type dynStub struct {
	items  map[string]map[string]types.AttributeValue
	exists bool

	getErr  error
	putErr  error
	scanErr error

	describeErrs []error
	describeHits int
	createHits   int
}

func newDynStub() *dynStub {
	return &dynStub{items: map[string]map[string]types.AttributeValue{}, exists: true}
}

func (d *dynStub) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if d.getErr != nil {
		return nil, d.getErr
	}
	key := in.Key["k"].(*types.AttributeValueMemberS).Value
	item, ok := d.items[key]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (d *dynStub) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if d.putErr != nil {
		return nil, d.putErr
	}
	key := in.Item["k"].(*types.AttributeValueMemberS).Value
	if in.ConditionExpression != nil && strings.Contains(*in.ConditionExpression, "attribute_not_exists") {
		if _, exists := d.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	d.items[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (d *dynStub) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if d.scanErr != nil {
		return nil, d.scanErr
	}
	scope := ""
	if attr, ok := in.ExpressionAttributeValues[":scope"].(*types.AttributeValueMemberS); ok {
		scope = attr.Value
	}
	var items []map[string]types.AttributeValue
	for k := range d.items {
		if !strings.HasPrefix(k, scope) {
			continue
		}
		items = append(items, map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: k},
		})
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (d *dynStub) CreateTable(context.Context, *dynamodb.CreateTableInput, ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	d.createHits++
	d.exists = true
	return &dynamodb.CreateTableOutput{}, nil
}

func (d *dynStub) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	d.describeHits++
	if len(d.describeErrs) > 0 {
		err := d.describeErrs[0]
		d.describeErrs = d.describeErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if !d.exists {
		return nil, &types.ResourceNotFoundException{}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableStatus: types.TableStatusActive},
	}, nil
}

func newDynStore(t *testing.T, stub *dynStub, prefix string) flavorcore.Store {
	t.Helper()
	store, err := New(context.Background(), Config{
		BaseConfig: flavorcore.BaseConfig{Prefix: prefix},
		Client:     stub,
	})
	if err != nil {
		t.Fatalf("dynamo store create failed: %v", err)
	}
	return store
}

func TestDynamoStoreContract(t *testing.T) {
	store := newDynStore(t, newDynStub(), "")
	if store.Driver() != flavorcore.DriverDynamo {
		t.Fatalf("expected dynamo driver, got %s", store.Driver())
	}
	flavortest.RunStoreContract(t, store, flavortest.Options{CaseName: t.Name()})
}

func TestDynamoStorePrefixIsolation(t *testing.T) {
	ctx := context.Background()
	stub := newDynStub()
	left := newDynStore(t, stub, "left")
	right := newDynStore(t, stub, "right")

	if _, err := left.Add(ctx, "vanilla", []byte("record")); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, ok, err := right.Get(ctx, "vanilla"); err != nil || ok {
		t.Fatalf("expected prefix-scoped miss: ok=%v err=%v", ok, err)
	}
	names, err := right.Names(ctx)
	if err != nil || len(names) != 0 {
		t.Fatalf("expected empty enumeration for other prefix: names=%v err=%v", names, err)
	}
	names, err = left.Names(ctx)
	if err != nil || len(names) != 1 || names[0] != "vanilla" {
		t.Fatalf("expected scoped name, got %v err=%v", names, err)
	}
}

func TestEnsureTableCreatesMissingTable(t *testing.T) {
	stub := newDynStub()
	stub.exists = false
	stub.describeErrs = []error{&types.ResourceNotFoundException{}}

	if err := ensureTable(context.Background(), stub, "tbl"); err != nil {
		t.Fatalf("ensure table failed: %v", err)
	}
	if stub.createHits != 1 {
		t.Fatalf("expected create table called once, got %d", stub.createHits)
	}
	if stub.describeHits < 2 {
		t.Fatalf("expected describe retried after create, got %d calls", stub.describeHits)
	}
}

func TestEnsureTableSkipsExistingTable(t *testing.T) {
	stub := newDynStub()
	if err := ensureTable(context.Background(), stub, "tbl"); err != nil {
		t.Fatalf("ensure table failed: %v", err)
	}
	if stub.createHits != 0 {
		t.Fatalf("expected no table creation, got %d", stub.createHits)
	}
}

func TestEnsureTablePropagatesDescribeError(t *testing.T) {
	stub := newDynStub()
	stub.describeErrs = []error{errors.New("describe boom")}

	err := ensureTable(context.Background(), stub, "tbl")
	if err == nil || !strings.Contains(err.Error(), "describe boom") {
		t.Fatalf("expected describe error, got %v", err)
	}
}

func TestDynamoStorePropagatesClientErrors(t *testing.T) {
	ctx := context.Background()
	stub := newDynStub()
	store := newDynStore(t, stub, "")

	stub.getErr = errors.New("get boom")
	if _, _, err := store.Get(ctx, "x"); err == nil {
		t.Fatalf("expected get error")
	}
	stub.putErr = errors.New("put boom")
	if _, err := store.Add(ctx, "x", []byte("v")); err == nil {
		t.Fatalf("expected add error")
	}
	stub.scanErr = errors.New("scan boom")
	if _, err := store.Names(ctx); err == nil {
		t.Fatalf("expected names error")
	}
	if _, err := store.Count(ctx); err == nil {
		t.Fatalf("expected count to surface scan error")
	}
}
