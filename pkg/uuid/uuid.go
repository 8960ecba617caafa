// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the primary keys of directory records.

Keys are UUIDv7 strings: time-ordered, so freshly inserted dioceses,
parishes and ministries land at the end of the primary-key B-tree.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string. It panics if the entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
