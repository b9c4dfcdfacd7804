package repository

import (
	"context"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultInvoicesTableName = "invoices"

type invoiceItem struct {
	ID        string `dynamodbav:"id"`
	Version   int    `dynamodbav:"v"`
	Network   string `dynamodbav:"net"`
	Token     string `dynamodbav:"token"`
	Decimals  int    `dynamodbav:"dec"`
	To        string `dynamodbav:"to"`
	Amount    string `dynamodbav:"amt"`
	Memo      string `dynamodbav:"memo,omitempty"`
	Nonce     string `dynamodbav:"nonce"`
	Expiry    int64  `dynamodbav:"exp"`
	Signature string `dynamodbav:"sig"`
	CreatedAt string `dynamodbav:"created_at"`
}

// InvoiceDynamoRepository persists signed invoices in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Invoices are immutable once written; the conditional put rejects id reuse so
// a signature can never be silently replaced.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	it := toInvoiceItem(inv)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:        inv.ID,
		Version:   inv.Version,
		Network:   inv.Network,
		Token:     inv.Token,
		Decimals:  inv.Decimals,
		To:        inv.To,
		Amount:    inv.Amount,
		Memo:      inv.Memo,
		Nonce:     inv.Nonce,
		Expiry:    inv.Expiry,
		Signature: inv.Signature,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:        it.ID,
		Version:   it.Version,
		Network:   it.Network,
		Token:     it.Token,
		Decimals:  it.Decimals,
		To:        it.To,
		Amount:    it.Amount,
		Memo:      it.Memo,
		Nonce:     it.Nonce,
		Expiry:    it.Expiry,
		Signature: it.Signature,
	}
}
