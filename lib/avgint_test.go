package lib

import "testing"

func TestAverageInt64(t *testing.T) {
	av := &AverageInt64{}
	for i := int64(1); i <= 100; i++ {
		av.Add(i)
	}
	if v := av.Samples(); v != 100 {
		t.Errorf("expected %v, got %v", 100, v)
	} else if v := av.Min(); v != 1 {
		t.Errorf("expected %v, got %v", 1, v)
	} else if v := av.Max(); v != 100 {
		t.Errorf("expected %v, got %v", 100, v)
	} else if v := av.Sum(); v != 5050 {
		t.Errorf("expected %v, got %v", 5050, v)
	} else if v := av.Mean(); v != 50 {
		t.Errorf("expected %v, got %v", 50, v)
	}
	if v := av.SD(); v <= 0 {
		t.Errorf("expected positive deviation, got %v", v)
	}
	stats := av.Stats()
	if v := stats["samples"].(int64); v != 100 {
		t.Errorf("expected %v, got %v", 100, v)
	}
}

func TestAverageInt64Empty(t *testing.T) {
	av := &AverageInt64{}
	if v := av.Mean(); v != 0 {
		t.Errorf("expected %v, got %v", 0, v)
	} else if v := av.Variance(); v != 0 {
		t.Errorf("expected %v, got %v", 0, v)
	} else if v := av.SD(); v != 0 {
		t.Errorf("expected %v, got %v", 0, v)
	}
}

func BenchmarkAvgintAdd(b *testing.B) {
	av := &AverageInt64{}
	for i := 0; i < b.N; i++ {
		av.Add(int64(i))
	}
}
