package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
)

func TestValidateSlot(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	busy := []BookedInterval{
		// 12/03 10:00 - 12:00
		{
			Start: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC),
		},
	}

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		wantErr  string
	}{
		{
			name:     "livre no futuro",
			start:    time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
			duration: 60 * time.Minute,
			wantErr:  "",
		},
		{
			name:     "no passado",
			start:    now.Add(-time.Hour),
			duration: 60 * time.Minute,
			wantErr:  "date_in_past",
		},
		{
			name:     "igual a agora",
			start:    now,
			duration: 60 * time.Minute,
			wantErr:  "date_in_past",
		},
		{
			name:     "dentro da antecedência mínima",
			start:    now.Add(23 * time.Hour),
			duration: 60 * time.Minute,
			wantErr:  "too_soon",
		},
		{
			name:     "exatamente no limite de antecedência",
			start:    now.Add(24 * time.Hour),
			duration: 60 * time.Minute,
			wantErr:  "",
		},
		{
			name:     "começa dentro de agendamento existente",
			start:    time.Date(2026, 3, 12, 11, 30, 0, 0, time.UTC),
			duration: 60 * time.Minute,
			wantErr:  "time_conflict",
		},
		{
			name:     "termina dentro de agendamento existente",
			start:    time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC),
			duration: 60 * time.Minute,
			wantErr:  "time_conflict",
		},
		{
			name:     "engloba agendamento existente",
			start:    time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
			duration: 4 * time.Hour,
			wantErr:  "time_conflict",
		},
		{
			name:     "encostado no fim não conflita",
			start:    time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC),
			duration: 60 * time.Minute,
			wantErr:  "",
		},
		{
			name:     "encostado no início não conflita",
			start:    time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
			duration: 60 * time.Minute,
			wantErr:  "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateSlot(ValidateSlotInput{
				Start:    c.start,
				Now:      now,
				LeadTime: 24 * time.Hour,
				Duration: c.duration,
				Existing: busy,
			})

			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("expected slot to be accepted, got %v", err)
				}
				return
			}

			if !httperr.IsBusiness(err, c.wantErr) {
				t.Fatalf("expected %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestValidateSlotDefaultLeadTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	err := ValidateSlot(ValidateSlotInput{
		Start:    now.Add(2 * time.Hour),
		Now:      now,
		LeadTime: 0, // cai no padrão de 24h
		Duration: 30 * time.Minute,
	})
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("expected too_soon with default lead time, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"intervalos disjuntos", at(0), at(60), at(120), at(180), false},
		{"interseção parcial", at(0), at(60), at(30), at(90), true},
		{"contido", at(0), at(120), at(30), at(60), true},
		{"mesmas pontas", at(0), at(60), at(0), at(60), true},
		{"back-to-back", at(0), at(60), at(60), at(120), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
				t.Fatalf("Overlaps = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFootprintMinutes(t *testing.T) {
	cases := []struct {
		snapshot, catalog, want int
	}{
		{90, 60, 90}, // snapshot vence
		{0, 45, 45},  // registro antigo usa catálogo
		{0, 0, 60},   // sem nada, padrão
		{-1, -1, 60}, // valores inválidos caem no padrão
	}

	for _, c := range cases {
		if got := FootprintMinutes(c.snapshot, c.catalog); got != c.want {
			t.Fatalf("FootprintMinutes(%d, %d) = %d, want %d", c.snapshot, c.catalog, got, c.want)
		}
	}
}
