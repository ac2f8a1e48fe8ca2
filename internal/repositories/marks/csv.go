package marks

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/markbook/internal/blob"
	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
)

// FileName is the object name of a snapshot inside an account namespace.
const FileName = "marks.csv"

type CSVRepository struct {
	store blob.Store
}

func NewCSVRepository(store blob.Store) *CSVRepository {
	return &CSVRepository{store: store}
}

func key(email string) string {
	return blob.Join(email, FileName)
}

func (r *CSVRepository) Put(ctx context.Context, snap models.Snapshot) error {
	ok, err := r.store.NamespaceExists(ctx, snap.Email)
	if err != nil {
		return common.StorageError("check namespace", err)
	}
	if !ok {
		return common.ErrAccountNotFound
	}

	data, err := encodeCSV(snap.Scores)
	if err != nil {
		return common.StorageError("encode marks", err)
	}
	return common.StorageError("write marks", r.store.Put(ctx, key(snap.Email), data))
}

func (r *CSVRepository) Get(ctx context.Context, email string) (*models.Snapshot, error) {
	data, err := r.store.Get(ctx, key(email))
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, common.StorageError("read marks", err)
	}

	scores, err := decodeCSV(data)
	if err != nil {
		return nil, common.StorageError("decode marks", err)
	}
	return &models.Snapshot{Email: email, Scores: scores}, nil
}

func encodeCSV(scores models.Scores) ([]byte, error) {
	subjects := models.Subjects()
	header := make([]string, len(subjects))
	row := make([]string, len(subjects))
	for i, s := range subjects {
		header[i] = string(s)
		row[i] = strconv.Itoa(scores[s])
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{header, row}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeCSV reads columns by header name, so column order in the file does
// not matter. Exactly one data row is expected.
func decodeCSV(data []byte) (models.Scores, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) != 2 {
		return nil, fmt.Errorf("expected header and one row, got %d records", len(records))
	}

	header, row := records[0], records[1]
	scores := make(models.Scores, len(header))
	for i, name := range header {
		subj, err := models.ParseSubject(name)
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(row[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", subj, err)
		}
		scores[subj] = v
	}
	if err := scores.Validate(); err != nil {
		return nil, err
	}
	return scores, nil
}
