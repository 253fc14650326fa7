package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortByDate(t *testing.T) {
	tests := []struct {
		name     string
		batch    []Message
		expected []Message
	}{
		{
			name: "Distinct dates sort ascending",
			batch: []Message{
				{Sender: "a", Text: "late", Date: "2023-05-01"},
				{Sender: "b", Text: "early", Date: "2021-12-31"},
				{Sender: "c", Text: "middle", Date: "2022-06-15"},
			},
			expected: []Message{
				{Sender: "b", Text: "early", Date: "2021-12-31"},
				{Sender: "c", Text: "middle", Date: "2022-06-15"},
				{Sender: "a", Text: "late", Date: "2023-05-01"},
			},
		},
		{
			// alpha is processed first and its 2023-01-10 item is
			// discovered before beta's, so it stays in front.
			name: "Equal dates keep discovery order",
			batch: []Message{
				{Sender: "alpha", Text: "newer", Date: "2023-05-01"},
				{Sender: "alpha", Text: "older", Date: "2023-01-10"},
				{Sender: "beta", Text: "only", Date: "2023-01-10"},
			},
			expected: []Message{
				{Sender: "alpha", Text: "older", Date: "2023-01-10"},
				{Sender: "beta", Text: "only", Date: "2023-01-10"},
				{Sender: "alpha", Text: "newer", Date: "2023-05-01"},
			},
		},
		{
			name:     "Empty batch",
			batch:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortByDate(tt.batch)
			require.Equal(t, tt.expected, tt.batch)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	batch := []Message{
		{Sender: "alice", Text: "hello", Date: "2023-01-10"},
		{Sender: "bob", Text: "", Date: "2023-05-01"},
	}

	data, err := Marshal(batch)
	require.NoError(t, err)

	var decoded []Message
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, batch, decoded)
}

func TestMarshalEmptyBatch(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestMarshalFieldOrder(t *testing.T) {
	data, err := Marshal([]Message{{Sender: "alice", Text: "hi", Date: "2023-01-10"}})
	require.NoError(t, err)
	require.JSONEq(t, `[{"sender":"alice","text":"hi","date":"2023-01-10"}]`, string(data))
	require.Equal(t, `[{"sender":"alice","text":"hi","date":"2023-01-10"}]`, string(data))
}
