package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// SnapshotFormat is a JSON list of already-parsed transactions, as saved
// by a previous run. Example:
//
//	{
//	  "transactions": [
//	    {"date": "2024-01-03 21:35", "sender": "monir", "item": "milk", "amount": 100}
//	  ]
//	}
type SnapshotFormat struct {
	Transactions []SnapshotTransaction `json:"transactions"`
}

type SnapshotTransaction struct {
	ID              string  `json:"id,omitempty"`
	Date            string  `json:"date"`
	Sender          string  `json:"sender"`
	Item            string  `json:"item"`
	Amount          float64 `json:"amount"`
	OriginalMessage string  `json:"original_message,omitempty"`
	CategoryID      string  `json:"category_id,omitempty"`
}

const snapshotDateLayout = "2006-01-02 15:04"

// LoadSnapshot parses a JSON snapshot file. The result carries only
// transactions; parse counters stay zero since nothing was re-parsed.
func LoadSnapshot(path string, _ *Config) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading file: %w", err)
	}

	var snapshot SnapshotFormat
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return ParseResult{}, fmt.Errorf("parsing JSON: %w", err)
	}

	var result ParseResult
	for _, s := range snapshot.Transactions {
		date, err := time.ParseInLocation(snapshotDateLayout, s.Date, time.Local)
		if err != nil {
			// snapshots written before times were recorded use date only
			date, err = time.ParseInLocation("2006-01-02", s.Date, time.Local)
			if err != nil {
				return ParseResult{}, fmt.Errorf("parsing date %q: %w", s.Date, err)
			}
		}
		result.Transactions = append(result.Transactions, Transaction{
			ID:              s.ID,
			Date:            date,
			Sender:          s.Sender,
			Item:            s.Item,
			Amount:          s.Amount,
			OriginalMessage: s.OriginalMessage,
			CategoryID:      s.CategoryID,
		})
	}
	result.Summary.Transactions = len(result.Transactions)

	return result, nil
}

func init() {
	RegisterSource("snapshot-json", SourceFunc(LoadSnapshot))
}
