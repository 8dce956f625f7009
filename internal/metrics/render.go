package metrics

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// ContentType is the content type of the rendered exposition.
const ContentType = "text/plain; charset=utf-8"

// Render returns the text exposition of every family in the registry.
//
// Families are sorted by name and samples by label values, so two renders
// with no writes in between are byte-identical. Declared families that have
// no observations yet still emit their HELP and TYPE lines.
//
// The returned error comes from collectors added with Register; the output
// still holds everything that could be gathered.
func (r *Registry) Render() ([]byte, error) {
	mfs, gatherErr := r.reg.Gather()

	r.mu.Lock()
	declared := make(map[string]*family, len(r.families))
	for name, f := range r.families {
		declared[name] = f
	}
	r.mu.Unlock()

	gathered := make(map[string]*dto.MetricFamily, len(mfs))
	names := make([]string, 0, len(mfs)+len(declared))
	for _, mf := range mfs {
		gathered[mf.GetName()] = mf
		names = append(names, mf.GetName())
	}
	for name := range declared {
		if _, ok := gathered[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		mf := gathered[name]
		if f, ok := declared[name]; ok {
			writeFamily(&buf, name, f.help, string(f.kind), f.labelKeys, mf)
			continue
		}
		writeFamily(&buf, name, mf.GetHelp(), typeName(mf.GetType()), nil, mf)
	}

	return buf.Bytes(), gatherErr
}

// WriteTo renders the registry into w. A gather error is returned after the
// partial output has been written.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	out, gatherErr := r.Render()
	n, err := w.Write(out)
	if err != nil {
		return int64(n), err
	}
	return int64(n), gatherErr
}

func typeName(t dto.MetricType) string {
	switch t {
	case dto.MetricType_COUNTER:
		return "counter"
	case dto.MetricType_GAUGE:
		return "gauge"
	case dto.MetricType_HISTOGRAM:
		return "histogram"
	case dto.MetricType_SUMMARY:
		return "summary"
	default:
		return "untyped"
	}
}

// writeFamily writes the HELP and TYPE lines of a family followed by its
// samples. keys fixes the label order; nil keeps the gathered order.
func writeFamily(buf *bytes.Buffer, name, help, typ string, keys []string, mf *dto.MetricFamily) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, escapeHelp(help))
	fmt.Fprintf(buf, "# TYPE %s %s\n", name, typ)
	if mf == nil {
		return
	}

	for _, m := range mf.GetMetric() {
		labels := orderLabels(keys, m.GetLabel())
		switch mf.GetType() {
		case dto.MetricType_COUNTER:
			writeSample(buf, name, labels, m.GetCounter().GetValue())
		case dto.MetricType_GAUGE:
			writeSample(buf, name, labels, m.GetGauge().GetValue())
		case dto.MetricType_HISTOGRAM:
			writeHistogram(buf, name, labels, m.GetHistogram())
		case dto.MetricType_SUMMARY:
			writeSummary(buf, name, labels, m.GetSummary())
		default:
			writeSample(buf, name, labels, m.GetUntyped().GetValue())
		}
	}
}

func writeHistogram(buf *bytes.Buffer, name string, labels []labelPair, h *dto.Histogram) {
	for _, b := range h.GetBucket() {
		if math.IsInf(b.GetUpperBound(), +1) {
			continue
		}
		writeSample(buf, name+"_bucket", withLabel(labels, "le", formatFloat(b.GetUpperBound())), float64(b.GetCumulativeCount()))
	}
	writeSample(buf, name+"_bucket", withLabel(labels, "le", "+Inf"), float64(h.GetSampleCount()))
	writeSample(buf, name+"_sum", labels, h.GetSampleSum())
	writeSample(buf, name+"_count", labels, float64(h.GetSampleCount()))
}

func writeSummary(buf *bytes.Buffer, name string, labels []labelPair, s *dto.Summary) {
	for _, q := range s.GetQuantile() {
		writeSample(buf, name, withLabel(labels, "quantile", formatFloat(q.GetQuantile())), q.GetValue())
	}
	writeSample(buf, name+"_sum", labels, s.GetSampleSum())
	writeSample(buf, name+"_count", labels, float64(s.GetSampleCount()))
}

type labelPair struct {
	name  string
	value string
}

// orderLabels arranges gathered label pairs in declaration order.
func orderLabels(keys []string, pairs []*dto.LabelPair) []labelPair {
	out := make([]labelPair, 0, len(pairs))
	if keys == nil {
		for _, p := range pairs {
			out = append(out, labelPair{name: p.GetName(), value: p.GetValue()})
		}
		return out
	}

	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		values[p.GetName()] = p.GetValue()
	}
	for _, k := range keys {
		out = append(out, labelPair{name: k, value: values[k]})
	}
	return out
}

func withLabel(labels []labelPair, name, value string) []labelPair {
	out := make([]labelPair, len(labels), len(labels)+1)
	copy(out, labels)
	return append(out, labelPair{name: name, value: value})
}

func writeSample(buf *bytes.Buffer, name string, labels []labelPair, value float64) {
	buf.WriteString(name)
	if len(labels) > 0 {
		buf.WriteByte('{')
		for i, l := range labels {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(l.name)
			buf.WriteString(`="`)
			buf.WriteString(escapeLabelValue(l.value))
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(' ')
	buf.WriteString(formatFloat(value))
	buf.WriteByte('\n')
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, +1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var (
	helpEscaper       = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	labelValueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)
)

func escapeHelp(s string) string {
	return helpEscaper.Replace(s)
}

func escapeLabelValue(s string) string {
	return labelValueEscaper.Replace(s)
}
