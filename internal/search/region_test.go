package search

import (
	"reflect"
	"testing"
)

func TestResolveCountries_ExplicitCountryWins(t *testing.T) {
	for _, region := range []string{"", "us", "europe", "nonsense"} {
		got := ResolveCountries(region, "fr")
		if !reflect.DeepEqual(got, []string{"fr"}) {
			t.Errorf("ResolveCountries(%q, \"fr\") = %v, want [fr]", region, got)
		}
	}
}

func TestResolveCountries_USRegion(t *testing.T) {
	got := ResolveCountries("us", "")
	if !reflect.DeepEqual(got, []string{"us"}) {
		t.Errorf("ResolveCountries(\"us\", \"\") = %v, want [us]", got)
	}
}

func TestResolveCountries_EuropeRegionIsOrderedNineCodes(t *testing.T) {
	want := []string{"gb", "de", "fr", "it", "es", "nl", "at", "be", "ch"}
	got := ResolveCountries("europe", "")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveCountries(\"europe\", \"\") = %v, want %v", got, want)
	}
}

func TestResolveCountries_NoScopeIsEmpty(t *testing.T) {
	for _, region := range []string{"", "asia", "EUROPE"} {
		if got := ResolveCountries(region, ""); len(got) != 0 {
			t.Errorf("ResolveCountries(%q, \"\") = %v, want empty", region, got)
		}
	}
}

func TestResolveCountries_ReturnsCopy(t *testing.T) {
	got := ResolveCountries("europe", "")
	got[0] = "xx"
	if again := ResolveCountries("europe", ""); again[0] != "gb" {
		t.Error("ResolveCountries must not expose the shared europe list")
	}
}

func TestOppositeRegion(t *testing.T) {
	cases := map[string]string{"us": "europe", "europe": "us", "": "", "asia": ""}
	for in, want := range cases {
		if got := oppositeRegion(in); got != want {
			t.Errorf("oppositeRegion(%q) = %q, want %q", in, got, want)
		}
	}
}
