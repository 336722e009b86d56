package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bsgreeks/greeks-validator/internal/config"
	"github.com/bsgreeks/greeks-validator/internal/errplot"
)

func Test_parseScenarios(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		want    []errplot.Scenario
		wantErr bool
	}{
		{
			name:  "two scenarios",
			flags: []string{"s1.csv=Scenario 1 (ATM)", "s2.csv=Scenario 2 (Stress)"},
			want: []errplot.Scenario{
				{CSV: "s1.csv", Name: "Scenario 1 (ATM)"},
				{CSV: "s2.csv", Name: "Scenario 2 (Stress)"},
			},
		},
		{
			name:  "name keeps later equal signs",
			flags: []string{"s.csv=a=b"},
			want:  []errplot.Scenario{{CSV: "s.csv", Name: "a=b"}},
		},
		{name: "missing separator", flags: []string{"s.csv"}, wantErr: true},
		{name: "missing name", flags: []string{"s.csv="}, wantErr: true},
		{name: "missing csv", flags: []string{"=Scenario"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScenarios(tt.flags)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseScenarios() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_scenariosFrom_Defaults(t *testing.T) {
	greeksConfig = config.Default()

	got, err := scenariosFrom(nil)
	assert.NoError(t, err)
	assert.Equal(t, []errplot.Scenario{
		{CSV: "bs_fd_vs_complex_scenario1.csv", Name: "Scenario 1 (ATM)"},
		{CSV: "bs_fd_vs_complex_scenario2.csv", Name: "Scenario 2 (Stress)"},
	}, got)
}
