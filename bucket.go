package lg

import "sort"

// LocaleBucket groups resources by lower-cased locale; "" holds the neutral
// ones. Order inside a bucket follows the source collection.
type LocaleBucket map[string][]Resource

// GroupByLocale partitions resources into buckets. A resource whose id was
// already seen is skipped, so ids are unique across the whole bucket map.
func GroupByLocale(resources []Resource) LocaleBucket {
	bucket := make(LocaleBucket)
	seen := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		bucket[r.Locale] = append(bucket[r.Locale], r)
	}
	return bucket
}

// Locales returns the bucket keys in sorted order.
func (b LocaleBucket) Locales() []string {
	locales := make([]string, 0, len(b))
	for l := range b {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Find returns the first resource of bucket[locale] whose BaseName matches.
func (b LocaleBucket) Find(locale, baseName string) (Resource, bool) {
	for _, r := range b[locale] {
		if r.BaseName == baseName {
			return r, true
		}
	}
	return Resource{}, false
}

// LocalesOf returns the locales that hold a resource named baseName.
func (b LocaleBucket) LocalesOf(baseName string) []string {
	var locales []string
	for _, l := range b.Locales() {
		if _, ok := b.Find(l, baseName); ok {
			locales = append(locales, l)
		}
	}
	return locales
}

// Lookup finds a resource by id.
func (b LocaleBucket) Lookup(id string) (Resource, bool) {
	id = normalizeID(id)
	for _, resources := range b {
		for _, r := range resources {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Resource{}, false
}
