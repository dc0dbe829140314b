package synth

import "testing"

func TestParamsDefaults(t *testing.T) {
	p := NewParams()
	if p.HTile || p.VTile {
		t.Fatalf("tiling should default off")
	}
	if p.Autism != 32.0/256.0 {
		t.Fatalf("autism default = %v, want 0.125", p.Autism)
	}
	if p.Neighbors != 29 || p.Tries != 192 || p.Magic != 192 {
		t.Fatalf("defaults = %d/%d/%d, want 29/192/192", p.Neighbors, p.Tries, p.Magic)
	}
	if p.Seed == 0 {
		t.Fatalf("seed should default to a time-derived value")
	}
}

func TestParamsSettersClamp(t *testing.T) {
	p := NewParams()
	p.SetAutism(2.5)
	if p.Autism != 1 {
		t.Fatalf("autism = %v, want clamped to 1", p.Autism)
	}
	p.SetAutism(-1)
	if p.Autism != 0 {
		t.Fatalf("autism = %v, want clamped to 0", p.Autism)
	}
	p.SetNeighbors(5000)
	if p.Neighbors != MaxNeighbors {
		t.Fatalf("neighbors = %d, want %d", p.Neighbors, MaxNeighbors)
	}
	p.SetTries(-3)
	if p.Tries != 0 {
		t.Fatalf("tries = %d, want 0", p.Tries)
	}
	p.SetMagic(999)
	if p.Magic != MaxMagic {
		t.Fatalf("magic = %d, want %d", p.Magic, MaxMagic)
	}
}

func TestParamsClampedCopy(t *testing.T) {
	p := NewParams()
	p.Neighbors = 100000 // direct assignment, bypassing the setter
	p.Autism = -5
	c := p.clamped()
	if c.Neighbors != MaxNeighbors || c.Autism != 0 {
		t.Fatalf("clamped copy = %d/%v", c.Neighbors, c.Autism)
	}
	if p.Neighbors != 100000 {
		t.Fatalf("clamped must not mutate the original")
	}
}

func TestLookupOption(t *testing.T) {
	o, ok := LookupOption("neighbors")
	if !ok || o.Flag != "N" || o.Max != MaxNeighbors {
		t.Fatalf("neighbors lookup = %+v ok=%v", o, ok)
	}
	if _, ok := LookupOption("nope"); ok {
		t.Fatalf("unknown option should not resolve")
	}
	if v := o.Clamp(99999); v != MaxNeighbors {
		t.Fatalf("Clamp = %v, want %d", v, MaxNeighbors)
	}
}
