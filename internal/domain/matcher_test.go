package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filegrab.dev/pkg/filegrab/internal/domain"
)

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		keywords    []string
		wantKeyword string
		wantMatch   bool
	}{
		{
			name:        "single keyword hit",
			filename:    "invoice_jan.txt",
			keywords:    []string{"invoice"},
			wantKeyword: "invoice",
			wantMatch:   true,
		},
		{
			name:      "no keyword hit",
			filename:  "report.txt",
			keywords:  []string{"invoice", "2023"},
			wantMatch: false,
		},
		{
			name:        "first keyword in input order wins",
			filename:    "invoice_2023.txt",
			keywords:    []string{"2023", "invoice"},
			wantKeyword: "2023",
			wantMatch:   true,
		},
		{
			name:        "order beats specificity",
			filename:    "invoice_2023.txt",
			keywords:    []string{"voice", "invoice_2023"},
			wantKeyword: "voice",
			wantMatch:   true,
		},
		{
			name:      "matching is case sensitive",
			filename:  "Invoice.txt",
			keywords:  []string{"invoice"},
			wantMatch: false,
		},
		{
			name:      "empty keyword list never matches",
			filename:  "invoice.txt",
			keywords:  nil,
			wantMatch: false,
		},
		{
			name:        "duplicate keywords are harmless",
			filename:    "data_2023.csv",
			keywords:    []string{"2023", "2023"},
			wantKeyword: "2023",
			wantMatch:   true,
		},
		{
			name:        "keyword can span stem and extension",
			filename:    "data.csv",
			keywords:    []string{"a.c"},
			wantKeyword: "a.c",
			wantMatch:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyword, matched := domain.MatchKeyword(tt.filename, tt.keywords)

			assert.Equal(t, tt.wantMatch, matched)
			assert.Equal(t, tt.wantKeyword, keyword)
		})
	}
}
