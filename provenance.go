package formbuilder

// Origin names the operation that wrote a record key.
type Origin string

const (
	OriginSingle        Origin = "single"
	OriginArray         Origin = "array"
	OriginTransfer      Origin = "transfer"
	OriginInnerTransfer Origin = "inner-transfer"
	OriginCatchAll      Origin = "catch-all"
)

// Provenance contains origin information for record keys.
type Provenance struct {
	Fields []FieldProvenance
}

// FieldProvenance describes where a record value came from.
type FieldProvenance struct {
	Key         string // Record key
	SourceKey   string // Key read by the operation (store key, or record key for inner transfers)
	Origin      Origin
	Transformed bool // A TransformFunc ran
	Validated   bool // A Schema ran
}

// Lookup returns the provenance entry for a record key.
func (p *Provenance) Lookup(key string) (FieldProvenance, bool) {
	if p == nil {
		return FieldProvenance{}, false
	}
	for _, f := range p.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldProvenance{}, false
}

// provenanceLog keeps the latest entry per key in first-write order.
type provenanceLog struct {
	order  []string
	fields map[string]FieldProvenance
}

func newProvenanceLog() *provenanceLog {
	return &provenanceLog{fields: make(map[string]FieldProvenance)}
}

func (l *provenanceLog) record(fp FieldProvenance) {
	if _, ok := l.fields[fp.Key]; !ok {
		l.order = append(l.order, fp.Key)
	}
	l.fields[fp.Key] = fp
}

func (l *provenanceLog) clone() *provenanceLog {
	out := &provenanceLog{
		order:  append([]string(nil), l.order...),
		fields: make(map[string]FieldProvenance, len(l.fields)),
	}
	for k, fp := range l.fields {
		out.fields[k] = fp
	}
	return out
}

// snapshot returns entries for keys still present in rec.
func (l *provenanceLog) snapshot(rec Record) *Provenance {
	prov := &Provenance{Fields: make([]FieldProvenance, 0, len(l.order))}
	for _, k := range l.order {
		if _, ok := rec[k]; !ok {
			continue
		}
		prov.Fields = append(prov.Fields, l.fields[k])
	}
	return prov
}
