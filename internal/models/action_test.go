package models

import "testing"

func TestActionLabel(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
		side      Side
		party     Party
		want      string
	}{
		{"buy yes democrat", DirectionBuy, SideYes, PartyDemocratic, "Buy Yes on the Democrat"},
		{"buy no republican", DirectionBuy, SideNo, PartyRepublican, "Buy No on the Republican"},
		{"sell yes republican", DirectionSell, SideYes, PartyRepublican, "Sell Yes on the Republican"},
		{"sell no democrat", DirectionSell, SideNo, PartyDemocratic, "Sell No on the Democrat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActionLabel(tt.direction, tt.side, tt.party)
			if got != tt.want {
				t.Errorf("ActionLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPartyFullName(t *testing.T) {
	if got := PartyDemocratic.FullName(); got != "Democrat" {
		t.Errorf("PartyDemocratic.FullName() = %q, want %q", got, "Democrat")
	}
	if got := PartyRepublican.FullName(); got != "Republican" {
		t.Errorf("PartyRepublican.FullName() = %q, want %q", got, "Republican")
	}
}

func TestRaceKeyString(t *testing.T) {
	key := RaceKey{Region: "OH", Contest: "SEN"}
	if got := key.String(); got != "OH-SEN" {
		t.Errorf("String() = %q, want %q", got, "OH-SEN")
	}
	if key.IsZero() {
		t.Error("IsZero() = true for populated key")
	}
	if !(RaceKey{}).IsZero() {
		t.Error("IsZero() = false for zero key")
	}
}

func TestForecastRecordRegion(t *testing.T) {
	tests := []struct {
		district string
		want     string
	}{
		{"OH-S3", "OH"},
		{"TX-G1", "TX"},
		{"GA-S3-runoff", "GA"},
		{"AK", "AK"},
	}

	for _, tt := range tests {
		rec := ForecastRecord{District: tt.district}
		if got := rec.Region(); got != tt.want {
			t.Errorf("Region(%q) = %q, want %q", tt.district, got, tt.want)
		}
	}
}

func TestMarketContractFingerprint(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	a := MarketContract{
		MarketName: "Which party will win the OH Senate race?",
		MarketURL:  "https://example.org/oh",
		Party:      PartyDemocratic,
		BuyYes:     price(0.40),
		SellNo:     price(0.62),
	}
	b := a
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical contracts produced different fingerprints")
	}

	b.BuyYes = price(0.41)
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("contracts with different prices share a fingerprint")
	}

	b.BuyYes = nil
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("nil price not distinguished from quoted price")
	}
}

func TestMarketContractQuotes(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	c := MarketContract{
		Party:   PartyRepublican,
		BuyYes:  price(0.55),
		BuyNo:   price(0.48),
		SellYes: price(0.53),
	}
	q := c.Quotes()
	if q.BuyYes != c.BuyYes || q.BuyNo != c.BuyNo || q.SellYes != c.SellYes || q.SellNo != nil {
		t.Error("Quotes() did not carry prices over")
	}
}
