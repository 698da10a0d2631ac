package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReviewArtifactTextOnly(t *testing.T) {
	assert := assert.New(t)

	artifact := BuildReviewArtifact(SubmissionEvent{
		UserID:  "u1",
		UserTag: "someone",
		Content: "  I am 19  ",
	})
	assert.Equal("u1", artifact.UserID)
	assert.Equal("I am 19", artifact.Statement)
	assert.Empty(artifact.ImageURL)
	assert.Empty(artifact.VideoURL)
	assert.Empty(artifact.AttachmentURLs)
}

func TestBuildReviewArtifactImageFirst(t *testing.T) {
	assert := assert.New(t)

	artifact := BuildReviewArtifact(SubmissionEvent{
		UserID: "u1",
		Attachments: []Attachment{
			{URL: "https://cdn.example/id.png", ContentType: "image/png"},
			{URL: "https://cdn.example/extra.pdf", ContentType: "application/pdf"},
		},
	})
	assert.Equal("https://cdn.example/id.png", artifact.ImageURL)
	assert.Empty(artifact.VideoURL)
	assert.Equal([]string{"https://cdn.example/extra.pdf"}, artifact.AttachmentURLs)
}

func TestBuildReviewArtifactVideoFirst(t *testing.T) {
	assert := assert.New(t)

	artifact := BuildReviewArtifact(SubmissionEvent{
		UserID: "u1",
		Attachments: []Attachment{
			{URL: "https://cdn.example/proof.mp4", ContentType: "video/mp4"},
			{URL: "https://cdn.example/extra.png", ContentType: "image/png"},
		},
	})
	assert.Empty(artifact.ImageURL)
	assert.Equal("https://cdn.example/proof.mp4", artifact.VideoURL)
	assert.Equal([]string{"https://cdn.example/extra.png"}, artifact.AttachmentURLs)
}

func TestBuildReviewArtifactOtherFiles(t *testing.T) {
	assert := assert.New(t)

	artifact := BuildReviewArtifact(SubmissionEvent{
		UserID: "u1",
		Attachments: []Attachment{
			{URL: "https://cdn.example/doc.pdf", ContentType: "application/pdf"},
			{URL: "https://cdn.example/other.zip", ContentType: "application/zip"},
		},
	})
	assert.Empty(artifact.ImageURL)
	assert.Empty(artifact.VideoURL)
	assert.Equal([]string{"https://cdn.example/doc.pdf", "https://cdn.example/other.zip"}, artifact.AttachmentURLs)
}
