package metrics

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueOf returns the value of the sample line whose series part equals series.
func valueOf(t *testing.T, out []byte, series string) float64 {
	t.Helper()
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, series+" ") {
			v, err := strconv.ParseFloat(strings.TrimPrefix(line, series+" "), 64)
			require.NoError(t, err)
			return v
		}
	}
	t.Fatalf("series %s not found in:\n%s", series, out)
	return 0
}

func render(t *testing.T, reg *Registry) []byte {
	t.Helper()
	out, err := reg.Render()
	require.NoError(t, err)
	return out
}

func TestCounter_IncRendersCount(t *testing.T) {
	for _, n := range []int{1, 7, 250} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			reg := NewRegistry()
			c, err := reg.RegisterCounter("jobs_total", "Jobs", "queue")
			require.NoError(t, err)

			for i := 0; i < n; i++ {
				c.Inc("default")
			}

			assert.Equal(t, float64(n), valueOf(t, render(t, reg), `jobs_total{queue="default"}`))
		})
	}
}

func TestRender_RequestCounterScenario(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.RegisterCounter("http_requests_total", "Total HTTP Requests", "method", "endpoint", "status")
	require.NoError(t, err)

	c.Inc("GET", "/", "200")
	c.Inc("GET", "/health", "200")
	c.Inc("GET", "/", "200")
	c.Inc("GET", "/", "200")

	want := "# HELP http_requests_total Total HTTP Requests\n" +
		"# TYPE http_requests_total counter\n" +
		`http_requests_total{method="GET",endpoint="/",status="200"} 3` + "\n" +
		`http_requests_total{method="GET",endpoint="/health",status="200"} 1` + "\n"

	assert.Equal(t, want, string(render(t, reg)))
}

func TestHistogram_ObserveScenario(t *testing.T) {
	reg := NewRegistry()
	h, err := reg.RegisterHistogram("http_request_duration_seconds", "HTTP Request Duration", DefaultBuckets, "method", "endpoint")
	require.NoError(t, err)

	require.NoError(t, h.Observe(0.1, "GET", "/api/data"))

	out := render(t, reg)
	labels := `method="GET",endpoint="/api/data"`
	assert.Equal(t, 1.0, valueOf(t, out, "http_request_duration_seconds_count{"+labels+"}"))
	assert.InDelta(t, 0.1, valueOf(t, out, "http_request_duration_seconds_sum{"+labels+"}"), 1e-9)

	for _, b := range DefaultBuckets {
		series := "http_request_duration_seconds_bucket{" + labels + `,le="` + formatFloat(b) + `"}`
		want := 0.0
		if b >= 0.1 {
			want = 1
		}
		assert.Equal(t, want, valueOf(t, out, series), series)
	}
	assert.Equal(t, 1.0, valueOf(t, out, "http_request_duration_seconds_bucket{"+labels+`,le="+Inf"}`))
}

func TestHistogram_CumulativeBuckets(t *testing.T) {
	reg := NewRegistry()
	h, err := reg.RegisterHistogram("latency_seconds", "Latency", []float64{0.01, 0.1, 1}, "op")
	require.NoError(t, err)

	values := []float64{0.003, 0.02, 0.01, 0.7, 20}
	var sum float64
	for _, v := range values {
		require.NoError(t, h.Observe(v, "read"))
		sum += v
	}

	out := render(t, reg)
	assert.Equal(t, 2.0, valueOf(t, out, `latency_seconds_bucket{op="read",le="0.01"}`))
	assert.Equal(t, 3.0, valueOf(t, out, `latency_seconds_bucket{op="read",le="0.1"}`))
	assert.Equal(t, 4.0, valueOf(t, out, `latency_seconds_bucket{op="read",le="1"}`))
	assert.Equal(t, 5.0, valueOf(t, out, `latency_seconds_bucket{op="read",le="+Inf"}`))
	assert.Equal(t, float64(len(values)), valueOf(t, out, `latency_seconds_count{op="read"}`))
	assert.InDelta(t, sum, valueOf(t, out, `latency_seconds_sum{op="read"}`), 1e-9)
}

func TestHistogram_ObserveRejectsInvalidValues(t *testing.T) {
	reg := NewRegistry()
	h, err := reg.RegisterHistogram("latency_seconds", "Latency", []float64{1}, "op")
	require.NoError(t, err)

	for _, v := range []float64{-0.5, math.NaN()} {
		err := h.Observe(v, "read")
		assert.ErrorIs(t, err, ErrInvalidObservation)
	}

	assert.NotContains(t, string(render(t, reg)), `latency_seconds_count{op="read"}`)
}

func TestCounter_ConcurrentIncrements(t *testing.T) {
	const (
		workers    = 16
		increments = 1000
	)

	reg := NewRegistry()
	c, err := reg.RegisterCounter("hits_total", "Hits", "path")
	require.NoError(t, err)
	h, err := reg.RegisterHistogram("hit_seconds", "Hit duration", []float64{0.5}, "path")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < increments; i++ {
				c.Inc("/")
				_ = h.Observe(0.25, "/")
			}
		}()
	}

	// renders racing with writers must not corrupt anything
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			_, _ = reg.Render()
		}
	}()

	wg.Wait()
	<-done

	out := render(t, reg)
	assert.Equal(t, float64(workers*increments), valueOf(t, out, `hits_total{path="/"}`))
	assert.Equal(t, float64(workers*increments), valueOf(t, out, `hit_seconds_bucket{path="/",le="0.5"}`))
	assert.Equal(t, float64(workers*increments), valueOf(t, out, `hit_seconds_count{path="/"}`))
}

func TestRender_Idempotent(t *testing.T) {
	reg := NewRegistry()
	m, err := NewHTTPMetrics(reg, nil)
	require.NoError(t, err)

	require.NoError(t, m.Record("GET", "/", 200, 3*time.Millisecond))
	require.NoError(t, m.Record("POST", "unknown", 404, 40*time.Millisecond))

	first := render(t, reg)
	second := render(t, reg)
	assert.Equal(t, first, second)
}

func TestRender_DeclaredFamilyWithoutSamples(t *testing.T) {
	reg := NewRegistry()
	_, err := NewHTTPMetrics(reg, nil)
	require.NoError(t, err)

	want := "# HELP http_request_duration_seconds HTTP Request Duration\n" +
		"# TYPE http_request_duration_seconds histogram\n" +
		"# HELP http_requests_total Total HTTP Requests\n" +
		"# TYPE http_requests_total counter\n"
	assert.Equal(t, want, string(render(t, reg)))
}

func TestRender_EscapesLabelValuesAndHelp(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.RegisterCounter("odd_total", "line one\nline \\two", "v")
	require.NoError(t, err)

	c.Inc(`say "hi"` + "\n")

	out := string(render(t, reg))
	assert.Contains(t, out, `# HELP odd_total line one\nline \\two`)
	assert.Contains(t, out, `odd_total{v="say \"hi\"\n"} 1`)
}

func TestGauge_Set(t *testing.T) {
	reg := NewRegistry()
	g, err := reg.RegisterGauge("temperature_celsius", "Temperature", "room")
	require.NoError(t, err)

	g.Set(21.5, "kitchen")
	g.Set(19, "kitchen")

	out := render(t, reg)
	assert.Contains(t, string(out), "# TYPE temperature_celsius gauge\n")
	assert.Equal(t, 19.0, valueOf(t, out, `temperature_celsius{room="kitchen"}`))
}

func TestRegistry_Redeclaration(t *testing.T) {
	tests := []struct {
		name    string
		declare func(reg *Registry) error
		wantErr error
	}{
		{
			name: "same counter twice returns existing handle",
			declare: func(reg *Registry) error {
				_, err := reg.RegisterCounter("a_total", "A", "x", "y")
				return err
			},
		},
		{
			name: "counter with different label keys",
			declare: func(reg *Registry) error {
				_, err := reg.RegisterCounter("a_total", "A", "y", "x")
				return err
			},
			wantErr: ErrConflictingDeclaration,
		},
		{
			name: "counter with fewer label keys",
			declare: func(reg *Registry) error {
				_, err := reg.RegisterCounter("a_total", "A", "x")
				return err
			},
			wantErr: ErrConflictingDeclaration,
		},
		{
			name: "same name as histogram",
			declare: func(reg *Registry) error {
				_, err := reg.RegisterHistogram("a_total", "A", []float64{1}, "x", "y")
				return err
			},
			wantErr: ErrConflictingDeclaration,
		},
		{
			name: "same name as gauge",
			declare: func(reg *Registry) error {
				_, err := reg.RegisterGauge("a_total", "A", "x", "y")
				return err
			},
			wantErr: ErrConflictingDeclaration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			first, err := reg.RegisterCounter("a_total", "A", "x", "y")
			require.NoError(t, err)

			err = tt.declare(reg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			again, err := reg.RegisterCounter("a_total", "A", "x", "y")
			require.NoError(t, err)
			assert.Same(t, first, again)
		})
	}
}

func TestRegistry_ConflictingBucketsMessage(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.RegisterHistogram("latency_seconds", "L", []float64{0.1, 1}, "op")
	require.NoError(t, err)

	_, err = reg.RegisterHistogram("latency_seconds", "L", []float64{0.5, 2}, "op")
	require.ErrorIs(t, err, ErrConflictingDeclaration)
	assert.Contains(t, err.Error(), "histogram[op] buckets [0.1 1]")
	assert.Contains(t, err.Error(), "histogram[op] buckets [0.5 2]")
}

func TestRegistry_CallerLabelKeysAreCopied(t *testing.T) {
	reg := NewRegistry()

	keys := []string{"method", "status"}
	c, err := reg.RegisterCounter("calls_total", "Calls", keys...)
	require.NoError(t, err)

	histKeys := []string{"method"}
	h, err := reg.RegisterHistogram("call_seconds", "Call time", []float64{1}, histKeys...)
	require.NoError(t, err)

	keys[0], keys[1] = "changed", "again"
	keys = append(keys, "extra")
	histKeys[0] = "changed"

	assert.NotPanics(t, func() { c.Inc("GET", "200") })
	assert.NoError(t, h.Observe(0.5, "GET"))

	again, err := reg.RegisterCounter("calls_total", "Calls", "method", "status")
	require.NoError(t, err)
	assert.Same(t, c, again)

	out, err := reg.Render()
	require.NoError(t, err)
	assert.Contains(t, string(out), `calls_total{method="GET",status="200"} 1`+"\n")
	assert.Contains(t, string(out), `call_seconds_count{method="GET"} 1`+"\n")
	assert.Len(t, keys, 3)
}

func TestRegisterHistogram_Validation(t *testing.T) {
	tests := []struct {
		name    string
		buckets []float64
		labels  []string
		wantErr error
	}{
		{name: "empty buckets", buckets: nil, wantErr: ErrInvalidBuckets},
		{name: "only +Inf", buckets: []float64{math.Inf(1)}, wantErr: ErrInvalidBuckets},
		{name: "not increasing", buckets: []float64{0.1, 0.1, 1}, wantErr: ErrInvalidBuckets},
		{name: "NaN boundary", buckets: []float64{math.NaN()}, wantErr: ErrInvalidBuckets},
		{name: "reserved le label", buckets: []float64{1}, labels: []string{"le"}, wantErr: ErrReservedLabel},
		{name: "trailing +Inf accepted", buckets: []float64{0.5, 1, math.Inf(1)}, labels: []string{"op"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry().RegisterHistogram("h_seconds", "H", tt.buckets, tt.labels...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRegisterCounter_InvalidName(t *testing.T) {
	_, err := NewRegistry().RegisterCounter("", "Bad")
	assert.Error(t, err)
}

func TestArityMismatchPanics(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.RegisterCounter("a_total", "A", "method", "endpoint", "status")
	require.NoError(t, err)
	h, err := reg.RegisterHistogram("a_seconds", "A", []float64{1}, "method", "endpoint")
	require.NoError(t, err)
	g, err := reg.RegisterGauge("a_gauge", "A", "x")
	require.NoError(t, err)

	assert.PanicsWithValue(t,
		`metrics: a_total expects 3 label values [method endpoint status], got 2 [GET /]`,
		func() { c.Inc("GET", "/") })
	assert.Panics(t, func() { _ = h.Observe(1, "GET", "/", "200") })
	assert.Panics(t, func() { g.Set(1) })
}

func TestRender_ExternalCollectorKeepsGatheredOrder(t *testing.T) {
	reg := NewRegistry()
	ext := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "ext_value", Help: "External"}, []string{"zone", "app"})
	require.NoError(t, reg.Register(ext))
	ext.WithLabelValues("eu", "demo").Set(2)

	out := string(render(t, reg))
	assert.Contains(t, out, "# TYPE ext_value gauge\n")
	assert.Contains(t, out, `ext_value{app="demo",zone="eu"} 2`)
}

func TestRegisterRuntimeCollectors(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterRuntimeCollectors())

	out := string(render(t, reg))
	assert.Contains(t, out, "# TYPE go_goroutines gauge\n")

	assert.Error(t, reg.RegisterRuntimeCollectors())
}

func TestWriteTo(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.RegisterCounter("a_total", "A")
	require.NoError(t, err)
	c.Inc()

	var sb strings.Builder
	n, err := reg.WriteTo(&sb)
	require.NoError(t, err)
	assert.Equal(t, int64(sb.Len()), n)
	assert.Contains(t, sb.String(), "a_total 1\n")
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0.1:          "0.1",
		3:            "3",
		2.5:          "2.5",
		1e-05:        "1e-05",
		math.Inf(1):  "+Inf",
		math.Inf(-1): "-Inf",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in))
	}
	assert.Equal(t, "NaN", formatFloat(math.NaN()))
}
