package commands

import (
	"testing"

	"github.com/de-tools/survey-atlas/pkg/services/cleaning"
	"github.com/stretchr/testify/assert"
)

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    cleaning.Criterion
		wantErr bool
	}{
		{name: "simple", input: "Finished=True", want: cleaning.Criterion{Column: "Finished", Value: "True"}},
		{name: "equals in column", input: "a=b?=Yes", want: cleaning.Criterion{Column: "a=b?", Value: "Yes"}},
		{name: "empty value", input: "Finished=", want: cleaning.Criterion{Column: "Finished"}},
		{name: "no separator", input: "Finished", wantErr: true},
		{name: "empty column", input: "=True", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCriterion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
