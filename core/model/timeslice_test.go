package model

import (
	"testing"
	"time"
)

func TestBandNightWrapsMidnight(t *testing.T) {
	for _, h := range []int{22, 23, 0, 3, 5} {
		if !BandNight.ContainsHour(h) {
			t.Fatalf("expected hour %d in night band", h)
		}
	}
	for _, h := range []int{6, 12, 18, 21} {
		if BandNight.ContainsHour(h) {
			t.Fatalf("did not expect hour %d in night band", h)
		}
	}
}

func TestBandsPartitionDay(t *testing.T) {
	bands := []Band{BandNight, BandMorning, BandDay, BandEvening}
	for h := 0; h < 24; h++ {
		n := 0
		for _, b := range bands {
			if b.ContainsHour(h) {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("hour %d covered by %d bands", h, n)
		}
	}
}

func TestSeasonWinterSpansYearBoundary(t *testing.T) {
	for _, m := range []time.Month{time.December, time.January, time.February} {
		if !SeasonWinter.ContainsMonth(m) {
			t.Fatalf("expected %s in winter", m)
		}
	}
	if SeasonWinter.ContainsMonth(time.March) {
		t.Fatalf("march is not winter")
	}
}

func TestSeasonsPartitionYear(t *testing.T) {
	seasons := []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}
	for m := time.January; m <= time.December; m++ {
		n := 0
		for _, s := range seasons {
			if s.ContainsMonth(m) {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("month %s covered by %d seasons", m, n)
		}
	}
}

func TestTimesliceContains(t *testing.T) {
	ts := Timeslice{ID: "SUMMER_DAY", Season: SeasonSummer, Band: BandDay}
	in := time.Date(2019, time.July, 14, 13, 0, 0, 0, time.UTC)
	out := time.Date(2019, time.July, 14, 3, 0, 0, 0, time.UTC)
	if !ts.Contains(in) {
		t.Fatalf("expected %v inside %s", in, ts.ID)
	}
	if ts.Contains(out) {
		t.Fatalf("did not expect %v inside %s", out, ts.ID)
	}
}

func TestParseSeasonAndBand(t *testing.T) {
	if s, err := ParseSeason(" winter "); err != nil || s != SeasonWinter {
		t.Fatalf("expected winter got %v err %v", s, err)
	}
	if _, err := ParseSeason("monsoon"); err == nil || !IsConfiguration(err) {
		t.Fatalf("expected configuration error for unknown season")
	}
	if b, err := ParseBand("Evening"); err != nil || b != BandEvening {
		t.Fatalf("expected evening got %v err %v", b, err)
	}
	if _, err := ParseBand("noon"); err == nil || !IsConfiguration(err) {
		t.Fatalf("expected configuration error for unknown band")
	}
}

func TestParseBandExplicitRange(t *testing.T) {
	b, err := ParseBand("06-18")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Start != 6 || b.End != 18 {
		t.Fatalf("expected 06-18 got %v", b)
	}
	wrap, err := ParseBand("18-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wrap.ContainsHour(23) || !wrap.ContainsHour(3) || wrap.ContainsHour(12) {
		t.Fatalf("wrapping band 18-06 misclassifies hours")
	}
	if _, err := ParseBand("25-30"); err == nil {
		t.Fatalf("expected error for out-of-range band")
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("as-planned"); err != nil || p != PolicyAsPlanned {
		t.Fatalf("expected as_planned got %v err %v", p, err)
	}
	if p, err := ParsePolicy("REALISTIC"); err != nil || p != PolicyRealistic {
		t.Fatalf("expected realistic got %v err %v", p, err)
	}
	if _, err := ParsePolicy("optimal"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
