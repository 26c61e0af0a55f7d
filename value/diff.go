package value

import "strconv"

// DiffOp classifies one entry in a Diff result.
type DiffOp string

const (
	DiffAdded   DiffOp = "added"
	DiffRemoved DiffOp = "removed"
	DiffChanged DiffOp = "changed"
)

// DiffEntry describes one structural difference between two values at
// Path (dot/bracket notation, e.g. "items[2].name").
type DiffEntry struct {
	Path     string
	Op       DiffOp
	Before   Value
	After    Value
}

// Diff computes the structural differences between a and b, walking
// Arrays by index and Objects by key. Per the open question in spec.md
// §9, two Nulls are always equal under Diff — there is no asymmetric
// "null never equals null" variant anywhere in this package.
func Diff(a, b Value) []DiffEntry {
	var entries []DiffEntry
	diffAt("", a, b, &entries)
	return entries
}

func diffAt(path string, a, b Value, out *[]DiffEntry) {
	if Equal(a, b) {
		return
	}
	ak, bk := KindOf(a), KindOf(b)
	if ak != bk {
		*out = append(*out, DiffEntry{Path: path, Op: DiffChanged, Before: a, After: b})
		return
	}
	switch ak {
	case KindArray:
		aa, ba := a.(*Array), b.(*Array)
		max := aa.Len()
		if ba.Len() > max {
			max = ba.Len()
		}
		for i := 0; i < max; i++ {
			p := indexPath(path, i)
			switch {
			case i >= aa.Len():
				*out = append(*out, DiffEntry{Path: p, Op: DiffAdded, After: ba.Elements[i]})
			case i >= ba.Len():
				*out = append(*out, DiffEntry{Path: p, Op: DiffRemoved, Before: aa.Elements[i]})
			default:
				diffAt(p, aa.Elements[i], ba.Elements[i], out)
			}
		}
	case KindObject:
		ao, bo := a.(*Object), b.(*Object)
		seen := make(map[string]bool, ao.Len())
		for _, k := range ao.Keys() {
			seen[k] = true
			p := keyPath(path, k)
			av, _ := ao.Get(k)
			if bv, ok := bo.Get(k); ok {
				diffAt(p, av, bv, out)
			} else {
				*out = append(*out, DiffEntry{Path: p, Op: DiffRemoved, Before: av})
			}
		}
		for _, k := range bo.Keys() {
			if seen[k] {
				continue
			}
			bv, _ := bo.Get(k)
			*out = append(*out, DiffEntry{Path: keyPath(path, k), Op: DiffAdded, After: bv})
		}
	default:
		*out = append(*out, DiffEntry{Path: path, Op: DiffChanged, Before: a, After: b})
	}
}

func indexPath(base string, i int) string {
	if base == "" {
		return "[" + strconv.Itoa(i) + "]"
	}
	return base + "[" + strconv.Itoa(i) + "]"
}

func keyPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
