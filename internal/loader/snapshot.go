package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/dbsmedya/gorelate/internal/config"
	"github.com/dbsmedya/gorelate/internal/types"
)

// SnapshotSource reads one JSON document per table from any afs location:
// a local directory, file://, mem:// or a cloud bucket URL.
type SnapshotSource struct {
	fs       afs.Service
	location string
	pattern  string
}

// NewSnapshotSource creates a snapshot source from configuration.
func NewSnapshotSource(cfg config.SnapshotConfig) *SnapshotSource {
	return &SnapshotSource{
		fs:       afs.New(),
		location: cfg.Location,
		pattern:  cfg.Pattern,
	}
}

// URL returns where the table's snapshot is read from.
func (s *SnapshotSource) URL(table config.TableConfig) string {
	return url.Join(s.location, fmt.Sprintf(s.pattern, table.SourceName()))
}

// Fetch downloads and decodes the table's snapshot.
func (s *SnapshotSource) Fetch(ctx context.Context, table config.TableConfig) ([]types.Record, error) {
	location := s.URL(table)
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", location, err)
	}
	records, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	return records, nil
}

// featureSet is a map service query response.
type featureSet struct {
	Features []struct {
		Attributes types.Record `json:"attributes"`
	} `json:"features"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DecodeSnapshot accepts either a query response
// ({"features":[{"attributes":{...}}]}) or a bare array of records.
// Numbers are decoded as json.Number so large identifiers are not rounded.
func DecodeSnapshot(data []byte) ([]types.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if trimmed[0] == '[' {
		var records []types.Record
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return dropNil(records), nil
	}

	var set featureSet
	if err := dec.Decode(&set); err != nil {
		return nil, err
	}
	if set.Error != nil {
		return nil, fmt.Errorf("service error %d: %s", set.Error.Code, strings.TrimSpace(set.Error.Message))
	}
	records := make([]types.Record, 0, len(set.Features))
	for _, f := range set.Features {
		records = append(records, f.Attributes)
	}
	return dropNil(records), nil
}

func dropNil(records []types.Record) []types.Record {
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
