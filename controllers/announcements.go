package controllers

import (
	"net/http"
	"strings"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/gin-gonic/gin"
)

// AnnouncementInput is the body of POST /api/announcements.
type AnnouncementInput struct {
	Content string `json:"content" binding:"required"`
	Image   string `json:"image,omitempty"`
}

// CreateAnnouncement posts to the club feed. Reached through RequireLead.
func (a *API) CreateAnnouncement(c *gin.Context) {
	var input AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, "empty_content", "Content is required")
		return
	}

	authorID, _, err := session(c)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	announcement := &models.Announcement{
		Author:  authorID,
		Content: content,
		Image:   input.Image,
	}
	if err := a.Store.CreateAnnouncement(c.Request.Context(), announcement); err != nil {
		a.respondErr(c, err)
		return
	}

	a.resolveAuthors(c, announcement)
	c.JSON(http.StatusCreated, announcement)
}

// ListAnnouncements returns the feed newest first, with author names looked
// up from the user records at read time rather than denormalized at write
// time.
func (a *API) ListAnnouncements(c *gin.Context) {
	list, err := a.Store.ListAnnouncements(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}
	a.resolveAuthors(c, list...)
	c.JSON(http.StatusOK, list)
}

// resolveAuthors fills AuthorName and AuthorPicture from the User entity. A
// deleted author simply leaves both empty.
func (a *API) resolveAuthors(c *gin.Context, list ...*models.Announcement) {
	type authorInfo struct{ name, picture string }
	authors := make(map[string]authorInfo)
	for _, ann := range list {
		key := ann.Author.Hex()
		info, ok := authors[key]
		if !ok {
			if user, err := a.Store.GetUserByID(c.Request.Context(), ann.Author); err == nil {
				info = authorInfo{name: user.FullName, picture: user.ProfilePicture}
			}
			authors[key] = info
		}
		ann.AuthorName = info.name
		ann.AuthorPicture = info.picture
	}
}
