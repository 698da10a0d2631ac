package verify

import "strings"

// BuildReviewArtifact turns a proof submission into the staff-facing review
// artifact. The first attachment drives presentation: images are shown
// inline, videos become a link field, anything else is listed with the
// remaining attachment links.
func BuildReviewArtifact(evt SubmissionEvent) ReviewArtifact {
	artifact := ReviewArtifact{
		Title:     "NSFW Verification Request",
		UserID:    evt.UserID,
		UserTag:   evt.UserTag,
		Statement: strings.TrimSpace(evt.Content),
	}
	if len(evt.Attachments) == 0 {
		return artifact
	}

	first := evt.Attachments[0]
	rest := evt.Attachments[1:]
	switch {
	case strings.HasPrefix(first.ContentType, "image/"):
		artifact.ImageURL = first.URL
		artifact.AttachmentURLs = attachmentURLs(rest)
	case strings.HasPrefix(first.ContentType, "video/"):
		artifact.VideoURL = first.URL
		artifact.AttachmentURLs = attachmentURLs(rest)
	default:
		artifact.AttachmentURLs = attachmentURLs(evt.Attachments)
	}
	return artifact
}

func attachmentURLs(atts []Attachment) []string {
	if len(atts) == 0 {
		return nil
	}
	urls := make([]string, 0, len(atts))
	for _, a := range atts {
		urls = append(urls, a.URL)
	}
	return urls
}
