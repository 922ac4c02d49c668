package fy

import (
	"io"
	"sort"
	"sync"
)

// OpKind is one member of the closed operation set spec.md §4.E's
// dispatcher exposes ("a single dispatcher exposes a closed set of
// operations").
type OpKind uint8

const (
	OpCreateSeq OpKind = iota
	OpCreateMap
	OpInsert
	OpReplace
	OpAppend
	OpAssoc
	OpDisassoc
	OpKeys
	OpValues
	OpItems
	OpContains
	OpConcat
	OpReverse
	OpMerge
	OpUnique
	OpSort
	OpFilter
	OpMap
	OpReduce
	OpGet
	OpGetAt
	OpGetAtPath
	OpSet
	OpParse
	OpEmit
)

func (k OpKind) String() string {
	switch k {
	case OpCreateSeq:
		return "create_seq"
	case OpCreateMap:
		return "create_map"
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	case OpAppend:
		return "append"
	case OpAssoc:
		return "assoc"
	case OpDisassoc:
		return "disassoc"
	case OpKeys:
		return "keys"
	case OpValues:
		return "values"
	case OpItems:
		return "items"
	case OpContains:
		return "contains"
	case OpConcat:
		return "concat"
	case OpReverse:
		return "reverse"
	case OpMerge:
		return "merge"
	case OpUnique:
		return "unique"
	case OpSort:
		return "sort"
	case OpFilter:
		return "filter"
	case OpMap:
		return "map"
	case OpReduce:
		return "reduce"
	case OpGet:
		return "get"
	case OpGetAt:
		return "get_at"
	case OpGetAtPath:
		return "get_at_path"
	case OpSet:
		return "set"
	case OpParse:
		return "parse"
	case OpEmit:
		return "emit"
	}
	return "unknown"
}

// OpArgs is the per-op argument record the dispatcher interprets; only
// the fields relevant to Kind are read.
type OpArgs struct {
	Target Value
	Index  int
	Item   Value
	Key    Value
	Value  Value

	// Items/Pairs double as create_seq/create_map's record and, for
	// concat/merge, the ordered list of sequences/mappings to combine.
	Items []Value
	Pairs []Pair

	Path []Value // get_at_path: mapping keys or sequence indices, in order

	Internalize bool
	Parallel    bool // map/filter: evaluate Transform/Predicate concurrently

	Predicate func(Value) bool
	Transform func(Value) Value
	Reducer   func(acc, v Value) Value
	Init      Value

	Reader   io.Reader
	Sink     EventSink
	DocState DocumentState
}

// OpResult carries whichever of its fields the executed op populates.
type OpResult struct {
	Value Value
	Items []Value
	Pairs []Pair
	Bool  bool
}

// Op dispatches a single closed-set operation (spec.md §4.E
// "op(flags, inputs…)"), selecting parallel or sequential execution for
// map/filter per args.Parallel.
func (b *Builder) Op(kind OpKind, args OpArgs) (OpResult, error) {
	switch kind {
	case OpCreateSeq:
		return OpResult{Value: b.SequenceCreate(args.Items, args.Internalize)}, nil

	case OpCreateMap:
		v, err := b.MappingCreate(args.Pairs, args.Internalize)
		return OpResult{Value: v}, err

	case OpInsert:
		return OpResult{Value: b.SequenceInsert(args.Target, args.Index, args.Item)}, nil

	case OpReplace:
		return OpResult{Value: b.SequenceReplace(args.Target, args.Index, args.Item)}, nil

	case OpAppend:
		if args.Target.IsMapping() {
			return OpResult{Value: b.MappingAppend(args.Target, args.Key, args.Value)}, nil
		}
		return OpResult{Value: b.SequenceAppend(args.Target, args.Item)}, nil

	case OpAssoc:
		return OpResult{Value: b.MappingAssoc(args.Target, args.Key, args.Value)}, nil

	case OpDisassoc:
		return OpResult{Value: b.MappingDisassoc(args.Target, args.Key)}, nil

	case OpKeys:
		pairs, _ := args.Target.MappingGetPairs()
		keys := make([]Value, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
		}
		return OpResult{Items: keys}, nil

	case OpValues:
		pairs, _ := args.Target.MappingGetPairs()
		vals := make([]Value, len(pairs))
		for i, p := range pairs {
			vals[i] = p.Value
		}
		return OpResult{Items: vals}, nil

	case OpItems:
		if args.Target.IsMapping() {
			pairs, _ := args.Target.MappingGetPairs()
			return OpResult{Pairs: pairs}, nil
		}
		items, _ := args.Target.SequenceGetItems()
		return OpResult{Items: items}, nil

	case OpContains:
		if args.Target.IsMapping() {
			pairs, _ := args.Target.MappingGetPairs()
			for _, p := range pairs {
				if Compare(p.Key, args.Key) == 0 {
					return OpResult{Bool: true}, nil
				}
			}
			return OpResult{}, nil
		}
		items, _ := args.Target.SequenceGetItems()
		for _, it := range items {
			if Compare(it, args.Item) == 0 {
				return OpResult{Bool: true}, nil
			}
		}
		return OpResult{}, nil

	case OpConcat:
		var out []Value
		for _, seq := range args.Items {
			items, _ := seq.SequenceGetItems()
			out = append(out, items...)
		}
		return OpResult{Value: b.SequenceCreate(out, args.Internalize)}, nil

	case OpReverse:
		items, _ := args.Target.SequenceGetItems()
		out := make([]Value, len(items))
		for i, it := range items {
			out[len(items)-1-i] = it
		}
		return OpResult{Value: b.SequenceCreate(out, false)}, nil

	case OpMerge:
		var pairs []Pair
		for _, m := range args.Items {
			mp, _ := m.MappingGetPairs()
			for _, p := range mp {
				replaced := false
				for i := range pairs {
					if Compare(pairs[i].Key, p.Key) == 0 {
						pairs[i].Value = p.Value
						replaced = true
						break
					}
				}
				if !replaced {
					pairs = append(pairs, p)
				}
			}
		}
		v, err := b.MappingCreate(pairs, args.Internalize)
		return OpResult{Value: v}, err

	case OpUnique:
		items, _ := args.Target.SequenceGetItems()
		var out []Value
		for _, it := range items {
			dup := false
			for _, seen := range out {
				if Compare(seen, it) == 0 {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, it)
			}
		}
		return OpResult{Value: b.SequenceCreate(out, false)}, nil

	case OpSort:
		items, _ := args.Target.SequenceGetItems()
		out := append([]Value(nil), items...)
		sort.SliceStable(out, func(i, j int) bool { return Compare(out[i], out[j]) < 0 })
		return OpResult{Value: b.SequenceCreate(out, false)}, nil

	case OpFilter:
		items, _ := args.Target.SequenceGetItems()
		keep := make([]bool, len(items))
		runConcurrentOrSequential(args.Parallel, len(items), func(i int) {
			keep[i] = args.Predicate(items[i])
		})
		var out []Value
		for i, it := range items {
			if keep[i] {
				out = append(out, it)
			}
		}
		return OpResult{Value: b.SequenceCreate(out, false)}, nil

	case OpMap:
		items, _ := args.Target.SequenceGetItems()
		out := make([]Value, len(items))
		runConcurrentOrSequential(args.Parallel, len(items), func(i int) {
			out[i] = args.Transform(items[i])
		})
		return OpResult{Value: b.SequenceCreate(out, args.Internalize)}, nil

	case OpReduce:
		items, _ := args.Target.SequenceGetItems()
		acc := args.Init
		for _, it := range items {
			acc = args.Reducer(acc, it)
		}
		return OpResult{Value: acc}, nil

	case OpGet:
		return OpResult{Value: args.Target.MappingGetValue(args.Key)}, nil

	case OpGetAt:
		items, n := args.Target.SequenceGetItems()
		if args.Index < 0 || args.Index >= n {
			return OpResult{Value: InvalidValue}, nil
		}
		return OpResult{Value: items[args.Index]}, nil

	case OpGetAtPath:
		cur := args.Target
		for _, step := range args.Path {
			switch {
			case cur.IsMapping():
				cur = cur.MappingGetValue(step)
			case cur.IsSequence():
				items, n := cur.SequenceGetItems()
				idx := int(CastInt64Default(step, -1))
				if idx < 0 || idx >= n {
					return OpResult{Value: InvalidValue}, nil
				}
				cur = items[idx]
			default:
				return OpResult{Value: InvalidValue}, nil
			}
			if cur.IsInvalid() {
				return OpResult{Value: InvalidValue}, nil
			}
		}
		return OpResult{Value: cur}, nil

	case OpSet:
		if args.Target.IsSequence() {
			return OpResult{Value: b.SequenceReplace(args.Target, args.Index, args.Value)}, nil
		}
		return OpResult{Value: b.MappingAssoc(args.Target, args.Key, args.Value)}, nil

	case OpParse:
		v, err := FromText(args.Reader, b)
		return OpResult{Value: v}, err

	case OpEmit:
		enc := NewEncoder(args.Sink)
		err := enc.EmitDocument(args.DocState)
		return OpResult{}, err
	}
	return OpResult{}, newError(ErrInvalidInput, "Op", nil)
}

// runConcurrentOrSequential runs fn(i) for i in [0,n) either on n
// goroutines (one per index, joined before returning) or sequentially,
// matching spec.md §4.E's "selects parallel or sequential execution
// when applicable." Each call only ever touches its own index of the
// caller's output slice, so concurrent execution never races.
func runConcurrentOrSequential(parallel bool, n int, fn func(i int)) {
	if !parallel || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}
