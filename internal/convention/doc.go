// Package convention is the in-memory scheduling engine: conferences own their rooms, events and
// role sets, rooms own a calendar, and every cross-entity invariant (no double booking, room
// capacity, at least one organizer, speaker roles backed by events) is enforced here.
//
// Types in this package are not safe for concurrent use on their own. A Conference carries a
// reader/writer lock; callers go through Conference.View and Conference.Update (or the
// ConferenceManager helpers of the same name) and touch the conference only inside the callback.
package convention
