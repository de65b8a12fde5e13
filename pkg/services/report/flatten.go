package report

import (
	"context"
	"errors"
	"io"

	"github.com/de-tools/ads-atlas/pkg/ads"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
)

// BatchSource yields response batches until io.EOF. It is consumed exactly
// once; Flatten never rewinds or re-reads it.
type BatchSource interface {
	Recv() (*ads.Batch, error)
}

// Flatten drains src and replays the extractor list uniformly against every
// row. Row order is preserved exactly as delivered; nothing is reordered,
// sorted, or deduplicated here.
func Flatten(src BatchSource, fields []Field) (*domain.ReportTable, error) {
	table := &domain.ReportTable{Columns: Headers(fields)}
	for {
		batch, err := src.Recv()
		if errors.Is(err, io.EOF) {
			return table, nil
		}
		if err != nil {
			return nil, err
		}
		for _, row := range batch.Results {
			values := make([]any, len(fields))
			for i, f := range fields {
				values[i] = f.Extract(row)
			}
			table.Rows = append(table.Rows, domain.ReportRow{Values: values})
		}
	}
}

// Headers returns the display names for fields in selection order. Rendered
// column headers always equal this list for every row of the table.
func Headers(fields []Field) []string {
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Header
	}
	return headers
}

// FetchTable runs query for customerID and flattens the full response into a
// table using the given field paths.
func FetchTable(
	ctx context.Context,
	client ads.SearchClient,
	customerID string,
	query string,
	fieldPaths []string,
) (*domain.ReportTable, error) {
	fields, err := Fields(fieldPaths...)
	if err != nil {
		return nil, err
	}

	stream, err := client.SearchStream(ctx, customerID, query)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return Flatten(stream, fields)
}
