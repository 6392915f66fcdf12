// Package announcementservice publishes comunicados to the community board.
// Pinned announcements always sort before unpinned ones.
package announcementservice
