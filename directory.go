package fy

// TagDirective is one {handle, prefix} tag-shorthand declaration, the
// value-directory shape of spec.md §6's `tags` key: a sequence of
// `{handle, prefix}` mappings.
type TagDirective struct {
	Handle string
	Prefix string
}

// DocumentState is the value directory of spec.md §6: a document root
// plus the optional explicit version and tag-directive metadata that
// control what the encoder's DOCUMENT-START event declares.
type DocumentState struct {
	Root Value

	VersionMajor, VersionMinor int
	VersionExplicit            bool

	Tags         []TagDirective
	TagsExplicit bool
}

var (
	directoryRootKey     = "root"
	directoryVersionKey  = "version"
	directoryTagsKey     = "tags"
	directoryVerExpKey   = "version-explicit"
	directoryTagsExpKey  = "tags-explicit"
	directoryMajorKey    = "major"
	directoryMinorKey    = "minor"
	directoryHandleKey   = "handle"
	directoryPrefixKey   = "prefix"
)

// DirectoryToState parses a mapping-shaped value directory (spec.md §6)
// into a DocumentState. dir must be a Mapping carrying at least a
// "root" key; every other key is optional.
func DirectoryToState(dir Value) (DocumentState, error) {
	if !dir.IsMapping() {
		return DocumentState{}, newError(ErrInvalidInput, "DirectoryToState", nil)
	}
	ds := DocumentState{Root: mappingLookup(dir, directoryRootKey)}
	if ds.Root.IsInvalid() {
		return DocumentState{}, newError(ErrInvalidInput, "DirectoryToState", nil)
	}

	if v := mappingLookup(dir, directoryVersionKey); v.IsMapping() {
		ds.VersionMajor = int(CastInt64Default(mappingLookup(v, directoryMajorKey), 0))
		ds.VersionMinor = int(CastInt64Default(mappingLookup(v, directoryMinorKey), 0))
	}
	ds.VersionExplicit = CastBoolDefault(mappingLookup(dir, directoryVerExpKey), false)

	if v := mappingLookup(dir, directoryTagsKey); v.IsSequence() {
		items, _ := v.SequenceGetItems()
		for _, it := range items {
			if !it.IsMapping() {
				continue
			}
			ds.Tags = append(ds.Tags, TagDirective{
				Handle: CastStringDefault(mappingLookup(it, directoryHandleKey), ""),
				Prefix: CastStringDefault(mappingLookup(it, directoryPrefixKey), ""),
			})
		}
	}
	ds.TagsExplicit = CastBoolDefault(mappingLookup(dir, directoryTagsExpKey), false)

	return ds, nil
}

// mappingLookup scans m's pairs comparing keys by raw Go string content
// rather than going through MappingGetValue/Compare's Word()-fast-path:
// a synthetic lookup key built outside any builder has no real arena
// address, and directory keys like "version-explicit" are longer than
// the inline-string limit, so comparing by content sidesteps having to
// fabricate a Value that would misrepresent its own in-place/out-of-
// place invariant just to use as a lookup key.
func mappingLookup(m Value, key string) Value {
	pairs, _ := m.MappingGetPairs()
	for _, p := range pairs {
		if p.Key.IsString() && p.Key.GetStringNoCheck() == key {
			return p.Value
		}
	}
	return InvalidValue
}

// StateToDirectory builds the mapping-shaped value directory
// representing ds, through b, for round-tripping through the encoder's
// directory input (spec.md §6).
func StateToDirectory(b *Builder, ds DocumentState) (Value, error) {
	pairs := []Pair{{Key: b.String(directoryRootKey), Value: ds.Root}}

	if ds.VersionExplicit {
		verPairs := []Pair{
			{Key: b.String(directoryMajorKey), Value: b.Int(int64(ds.VersionMajor))},
			{Key: b.String(directoryMinorKey), Value: b.Int(int64(ds.VersionMinor))},
		}
		ver, err := b.MappingCreate(verPairs, false)
		if err != nil {
			return InvalidValue, err
		}
		pairs = append(pairs, Pair{Key: b.String(directoryVersionKey), Value: ver})
		pairs = append(pairs, Pair{Key: b.String(directoryVerExpKey), Value: b.Bool(true)})
	}

	if ds.TagsExplicit {
		tagItems := make([]Value, len(ds.Tags))
		for i, td := range ds.Tags {
			tagPairs := []Pair{
				{Key: b.String(directoryHandleKey), Value: b.String(td.Handle)},
				{Key: b.String(directoryPrefixKey), Value: b.String(td.Prefix)},
			}
			tm, err := b.MappingCreate(tagPairs, false)
			if err != nil {
				return InvalidValue, err
			}
			tagItems[i] = tm
		}
		pairs = append(pairs, Pair{Key: b.String(directoryTagsKey), Value: b.SequenceCreate(tagItems, false)})
		pairs = append(pairs, Pair{Key: b.String(directoryTagsExpKey), Value: b.Bool(true)})
	}

	return b.MappingCreate(pairs, false)
}
