package models

// Post lifecycle statuses
const (
	// PostStatusDraft indicates the post is not yet publicly visible
	PostStatusDraft = "draft"
	// PostStatusPublished indicates the post is live
	PostStatusPublished = "published"
	// PostStatusArchived indicates the post has been retired
	PostStatusArchived = "archived"
)

// ValidPostStatus reports whether s is one of the known lifecycle statuses.
func ValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}
