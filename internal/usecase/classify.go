package usecase

// ClassifyChanges splits the repository's status entries into staged and
// unstaged counter sets.
//
// Index pass: every entry that is not fully unmodified is tested against the
// index-side flags in priority order; the first matching category wins.
// Worktree pass: same test against the worktree-side flags, additionally
// skipping entries that carry no index-to-worktree delta. Renames and type
// changes fold into the modified counter on both sides. Entries matching no
// tested flag (conflicts, ignored-only states) count nowhere.
func ClassifyChanges(changes []Change) (index, worktree ChangeCounters) {
	for _, c := range changes {
		if c.Current() {
			continue
		}
		countSide(&index, c.Index)
	}

	for _, c := range changes {
		if c.Current() || !c.WorktreeDelta {
			continue
		}
		countSide(&worktree, c.Worktree)
	}

	return index, worktree
}

func countSide(counters *ChangeCounters, flags ChangeFlags) {
	switch {
	case flags.Has(ChangeNew):
		counters.New++
	case flags.Has(ChangeModified):
		counters.Modified++
	case flags.Has(ChangeDeleted):
		counters.Deleted++
	case flags.Has(ChangeRenamed):
		counters.Modified++
	case flags.Has(ChangeTypeChanged):
		counters.Modified++
	}
}
