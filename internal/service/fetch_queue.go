// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// fetchQueue is a FIFO of fetch requests that never holds two entries for
// the same id with overlapping modes.
type fetchQueue struct {
	entries []models.FetchRequest
}

func (q *fetchQueue) find(id uuid.UUID) []int {
	var at []int
	for i, e := range q.entries {
		if e.ID == id {
			at = append(at, i)
		}
	}
	return at
}

// pushBack appends req unless a queued entry already covers it. A queued
// entry that req covers is upgraded in place. It reports whether the queue
// changed.
func (q *fetchQueue) pushBack(req models.FetchRequest) bool {
	for _, i := range q.find(req.ID) {
		queued := q.entries[i]
		if queued.Mode.Covers(req.Mode) {
			return false
		}
		if req.Mode.Covers(queued.Mode) {
			q.entries[i].Mode = req.Mode
			return true
		}
	}
	q.entries = append(q.entries, req)
	return true
}

// pushFront puts req at the head of the queue. An overlapping entry is moved
// to the head instead, keeping the wider of the two modes.
func (q *fetchQueue) pushFront(req models.FetchRequest) {
	for _, i := range q.find(req.ID) {
		queued := q.entries[i]
		if !queued.Mode.Covers(req.Mode) && !req.Mode.Covers(queued.Mode) {
			continue
		}
		if queued.Mode.Covers(req.Mode) {
			req.Mode = queued.Mode
		}
		q.entries = append(q.entries[:i], q.entries[i+1:]...)
		break
	}
	q.entries = append([]models.FetchRequest{req}, q.entries...)
}

func (q *fetchQueue) pop() (models.FetchRequest, bool) {
	if len(q.entries) == 0 {
		return models.FetchRequest{}, false
	}
	head := q.entries[0]
	q.entries[0] = models.FetchRequest{}
	q.entries = q.entries[1:]
	return head, true
}

func (q *fetchQueue) len() int {
	return len(q.entries)
}

func (q *fetchQueue) any(match func(models.FetchRequest) bool) bool {
	for _, e := range q.entries {
		if match(e) {
			return true
		}
	}
	return false
}

func (q *fetchQueue) reset() {
	q.entries = nil
}
