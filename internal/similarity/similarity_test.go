package similarity

import (
	"math"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"La Liga", "laliga"},
		{"LaLiga", "laliga"},
		{"Liga de Fútbol Profesional", "ligadefutbolprofesional"},
		{"¡Tebas, otra vez!", "tebasotravez"},
		{"Año 2024", "ano2024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTerms(t *testing.T) {
	got := Terms("abcd")
	if len(got) != 2 || got["abc"] != 1 || got["bcd"] != 1 {
		t.Errorf("Terms(abcd) = %v", got)
	}
	if got := Terms("ab"); len(got) != 1 || got["ab"] != 1 {
		t.Errorf("short text should be one term, got %v", got)
	}
	if got := Terms("  ¿? "); len(got) != 0 {
		t.Errorf("punctuation-only text should have no terms, got %v", got)
	}
	if got := Terms("aaaa"); got["aaa"] != 2 {
		t.Errorf("repeated trigram should be counted twice, got %v", got)
	}
}

func TestNearDuplicateHeadlinesScoreHigh(t *testing.T) {
	m := Matrix([]string{
		"Tebas anuncia cambios en LaLiga",
		"Tebas anuncia cambios en la Liga",
	})
	if m[0][1] < 0.88 {
		t.Errorf("similarity = %f, want >= 0.88", m[0][1])
	}
}

func TestUnrelatedHeadlinesScoreLow(t *testing.T) {
	m := Matrix([]string{
		"Tebas anuncia cambios en LaLiga",
		"El Real Madrid gana en Vigo con un gol tardío",
	})
	if m[0][1] >= 0.5 {
		t.Errorf("similarity = %f, want < 0.5", m[0][1])
	}
}

func TestMatrixProperties(t *testing.T) {
	docs := []string{"Tebas habla de los derechos", "LaLiga cierra el mercado", "", "Tebas habla"}
	m := Matrix(docs)
	for i := range docs {
		for j := range docs {
			if math.Abs(m[i][j]-m[j][i]) > 1e-12 {
				t.Fatalf("matrix not symmetric at %d,%d", i, j)
			}
			if m[i][j] < 0 || m[i][j] > 1 {
				t.Fatalf("m[%d][%d] = %f out of [0,1]", i, j, m[i][j])
			}
		}
	}
	if m[0][0] != 1 {
		t.Errorf("self similarity = %f, want 1", m[0][0])
	}
	if m[2][2] != 0 || m[2][0] != 0 {
		t.Errorf("empty title should be a zero vector, got self=%f other=%f", m[2][2], m[2][0])
	}
}

func TestTFIDFVectorsAreNormalised(t *testing.T) {
	for i, v := range TFIDF([]string{"Tebas", "LaLiga y Tebas", "Clásico"}) {
		var sum float64
		for _, w := range v {
			sum += w * w
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("vector %d has squared norm %f", i, sum)
		}
	}
}
