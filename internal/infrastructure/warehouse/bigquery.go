package warehouse

import (
	"bytes"
	"context"
	"fmt"

	"momentum/internal/domain/entity"

	"cloud.google.com/go/bigquery"
	jsoniter "github.com/json-iterator/go"
	"google.golang.org/api/option"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BigQueryWarehouse appends rows to a table with one load job per batch.
type BigQueryWarehouse struct {
	client  *bigquery.Client
	dataset string
	table   string
}

type serviceAccountInfo struct {
	ProjectID string `json:"project_id"`
}

// NewBigQueryWarehouse creates a client from service account JSON. The project is taken
// from the credentials.
func NewBigQueryWarehouse(ctx context.Context, credentialsJSON, dataset, table string) (*BigQueryWarehouse, error) {
	var info serviceAccountInfo
	if err := json.Unmarshal([]byte(credentialsJSON), &info); err != nil {
		return nil, fmt.Errorf("parse service account info: %w", err)
	}
	if info.ProjectID == "" {
		return nil, fmt.Errorf("service account info has no project_id")
	}
	client, err := bigquery.NewClient(ctx, info.ProjectID, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("create bigquery client for %s: %w", info.ProjectID, err)
	}
	return &BigQueryWarehouse{client: client, dataset: dataset, table: table}, nil
}

// Load runs an append load job over the rows as newline-delimited JSON and waits for it.
func (w *BigQueryWarehouse) Load(ctx context.Context, rows []entity.SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}
	payload, err := encodeNDJSON(rows)
	if err != nil {
		return err
	}

	src := bigquery.NewReaderSource(bytes.NewReader(payload))
	src.SourceFormat = bigquery.JSON
	src.AutoDetect = true

	loader := w.client.Dataset(w.dataset).Table(w.table).LoaderFrom(src)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.SchemaUpdateOptions = []string{"ALLOW_FIELD_ADDITION"}

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("start load job into %s.%s: %w", w.dataset, w.table, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("wait for load job %s: %w", job.ID(), err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("load job %s into %s.%s failed: %w", job.ID(), w.dataset, w.table, err)
	}
	return nil
}

func (w *BigQueryWarehouse) Close() error {
	return w.client.Close()
}

// encodeNDJSON writes one JSON object per row.
func encodeNDJSON(rows []entity.SnapshotRow) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, row := range rows {
		if err := enc.Encode(row); err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
