// Copyright 2026 The GenAI-Chatbot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Record is one raw tabular row, keyed by column name.
type Record map[string]string

// ReadRecords reads a CSV file with a header row into ordered records.
// Row order is preserved; it drives source identifier assignment downstream.
// Fails with ErrDataUnavailable when the file cannot be read at all.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Recipe steps and ingredient lists contain embedded quotes and commas.
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %w", ErrDataUnavailable, path, err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrDataUnavailable, path, err)
		}

		record := make(Record, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
