package main

import (
	"reflect"
	"testing"
)

func TestParseZones(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", []int{}, false},
		{"9", []int{9}, false},
		{"9,10,11", []int{9, 10, 11}, false},
		{" 9, 10 , 11 ", []int{9, 10, 11}, false},
		{"9,ten", nil, true},
		{"9.5", nil, true},
	}

	for _, tt := range tests {
		got, err := parseZones(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseZones(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseZones(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
