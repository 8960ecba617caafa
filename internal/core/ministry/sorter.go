// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

/*
SortByRelevance orders ministries for display.

Description: Real ministries come before placeholders; within each group
names ascend by locale-aware collation. The input slice is not modified.

Parameters:
  - ministries: []*Ministry

Returns:
  - []*Ministry: A new, sorted slice
*/
func SortByRelevance(ministries []*Ministry) []*Ministry {
	sorted := slices.Clone(ministries)

	// Collators keep internal buffers and are not safe to share.
	collator := collate.New(language.Und)

	slices.SortStableFunc(sorted, func(a, b *Ministry) int {
		if rank := cmp.Compare(placeholderRank(a), placeholderRank(b)); rank != 0 {
			return rank
		}
		return collator.CompareString(a.Name, b.Name)
	})

	return sorted
}

func placeholderRank(m *Ministry) int {
	if IsPlaceholder(m) {
		return 1
	}
	return 0
}
