package chart

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"chemviz/internal/dao"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func distribution(pairs ...any) *dao.TypeDistribution {
	d := dao.NewTypeDistribution()
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return d
}

func TestFromDistribution_KeepsIterationOrder(t *testing.T) {
	got := FromDistribution(distribution("Pump", 3, "Valve", 5))
	if !reflect.DeepEqual(got.Labels, []string{"Pump", "Valve"}) {
		t.Fatalf("unexpected labels: %v", got.Labels)
	}
	if !reflect.DeepEqual(got.Values, []int{3, 5}) {
		t.Fatalf("unexpected values: %v", got.Values)
	}
	if got.Label != DatasetLabel {
		t.Fatalf("unexpected label: %s", got.Label)
	}

	reversed := FromDistribution(distribution("Valve", 5, "Pump", 3))
	if !reflect.DeepEqual(reversed.Labels, []string{"Valve", "Pump"}) {
		t.Fatalf("unexpected labels: %v", reversed.Labels)
	}
}

func TestFromDistribution_IsPure(t *testing.T) {
	in := distribution("Pump", 3, "Valve", 5)
	a := FromDistribution(in)
	b := FromDistribution(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("derivation not deterministic: %+v vs %+v", a, b)
	}
	if in.Len() != 2 {
		t.Fatalf("input mutated")
	}
	if v, _ := in.Get("Valve"); v != 5 {
		t.Fatalf("input mutated")
	}
}

func TestFromDistribution_CyclesPalette(t *testing.T) {
	got := FromDistribution(distribution("A", 1, "B", 1, "C", 1, "D", 1, "E", 1))
	if len(got.Colors) != 5 {
		t.Fatalf("unexpected colors: %v", got.Colors)
	}
	if got.Colors[0] != "#FF6384" || got.Colors[4] != "#FF6384" || got.Colors[3] != "#4BC0C0" {
		t.Fatalf("unexpected palette use: %v", got.Colors)
	}
}

func TestFromDistribution_Nil(t *testing.T) {
	got := FromDistribution(nil)
	if len(got.Labels) != 0 || len(got.Values) != 0 || !got.Empty() {
		t.Fatalf("expected empty data: %+v", got)
	}
}

func TestRender_PNG(t *testing.T) {
	d := FromDistribution(distribution("Pump", 3, "Valve", 5, "Compressor", 0))

	var pie bytes.Buffer
	if err := RenderPie(&pie, d); err != nil {
		t.Fatalf("pie: %v", err)
	}
	if !bytes.HasPrefix(pie.Bytes(), pngMagic) {
		t.Fatalf("pie is not a png")
	}

	var bar bytes.Buffer
	if err := RenderBar(&bar, d); err != nil {
		t.Fatalf("bar: %v", err)
	}
	if !bytes.HasPrefix(bar.Bytes(), pngMagic) {
		t.Fatalf("bar is not a png")
	}
}

func TestRender_SingleType(t *testing.T) {
	d := FromDistribution(distribution("Pump", 1))
	var buf bytes.Buffer
	if err := RenderBar(&buf, d); err != nil {
		t.Fatalf("bar: %v", err)
	}
}

func TestRender_NoData(t *testing.T) {
	for _, d := range []Data{FromDistribution(nil), FromDistribution(distribution("Pump", 0))} {
		var buf bytes.Buffer
		if err := RenderPie(&buf, d); !errors.Is(err, ErrNoData) {
			t.Fatalf("pie: expected ErrNoData, got %v", err)
		}
		if err := RenderBar(&buf, d); !errors.Is(err, ErrNoData) {
			t.Fatalf("bar: expected ErrNoData, got %v", err)
		}
		if buf.Len() != 0 {
			t.Fatalf("nothing should be written")
		}
	}
}
