package access

import "slices"

// AllowList holds the identities with full access. It is immutable after construction.
type AllowList struct {
	ids []int64
}

func NewAllowList(ids []int64) AllowList {
	cp := slices.Clone(ids)
	slices.Sort(cp)
	return AllowList{ids: slices.Compact(cp)}
}

// Contains проверяет, есть ли пользователь в списке полного доступа
func (a AllowList) Contains(userID int64) bool {
	_, found := slices.BinarySearch(a.ids, userID)
	return found
}

func (a AllowList) Len() int {
	return len(a.ids)
}
