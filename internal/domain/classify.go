package domain

// Classification is the result of partitioning a content's colors by
// category. Dropped holds every record whose tag matched no category.
type Classification struct {
	Buckets map[Category][]ColorAssignment
	Dropped []ColorAssignment
}

// Classify partitions colors into the four category buckets, preserving
// source order within each bucket. Every category key is present even
// when its bucket is empty.
func Classify(colors []ColorAssignment) Classification {
	out := Classification{Buckets: make(map[Category][]ColorAssignment, len(Categories))}
	for _, cat := range Categories {
		out.Buckets[cat] = []ColorAssignment{}
	}
	for _, c := range colors {
		cat, ok := ParseCategory(c.Tag())
		if !ok {
			out.Dropped = append(out.Dropped, c)
			continue
		}
		out.Buckets[cat] = append(out.Buckets[cat], c)
	}
	return out
}

// Total returns the number of records across all buckets.
func (c Classification) Total() int {
	n := 0
	for _, b := range c.Buckets {
		n += len(b)
	}
	return n
}
