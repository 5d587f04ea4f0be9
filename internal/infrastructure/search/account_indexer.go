package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/account-registration/internal/domain/entity"
)

const accountsMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "email":       {"type": "keyword"},
      "first_name":  {"type": "text", "fields": {"keyword": {"type": "keyword", "ignore_above": 100}}},
      "last_name":   {"type": "text", "fields": {"keyword": {"type": "keyword", "ignore_above": 100}}},
      "role":        {"type": "keyword"},
      "is_verified": {"type": "boolean"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// AccountIndexer keeps a searchable copy of each registered account.
// Secrets (password hash, verification token) are never indexed.
type AccountIndexer struct {
	es      esapi.Transport
	index   string
	timeout time.Duration
}

// NewAccountIndexer accepts any esapi.Transport; *elasticsearch.Client is one.
func NewAccountIndexer(es esapi.Transport, index string) *AccountIndexer {
	return &AccountIndexer{es: es, index: index, timeout: 3 * time.Second}
}

// EnsureIndex creates the accounts index with its mapping when missing.
func (x *AccountIndexer) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{x.index}}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", x.index, err)
	}
	defer func() { _ = res.Body.Close() }()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: status %s", x.index, res.Status())
	}

	createRes, err := esapi.IndicesCreateRequest{
		Index: x.index,
		Body:  strings.NewReader(accountsMapping),
	}.Do(ctx, x.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.index, err)
	}
	defer func() { _ = createRes.Body.Close() }()
	if createRes.IsError() {
		return fmt.Errorf("create index %s: status %s", x.index, createRes.Status())
	}
	return nil
}

func (x *AccountIndexer) AccountRegistered(ctx context.Context, a entity.Account) error {
	doc := map[string]any{
		"id":          a.ID,
		"email":       a.Email,
		"first_name":  a.FirstName,
		"last_name":   a.LastName,
		"role":        string(a.Role),
		"is_verified": a.IsVerified,
		"created_at":  a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  a.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(a.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index account %d: %w", a.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index account %d: status %s", a.ID, res.Status())
	}
	return nil
}
