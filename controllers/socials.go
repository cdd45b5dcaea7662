package controllers

import (
	"net/http"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/gin-gonic/gin"
)

// SocialLinkInput upserts the club profile for one platform.
type SocialLinkInput struct {
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
}

// ListSocials is public: the links are rendered in the site footer.
func (a *API) ListSocials(c *gin.Context) {
	links, err := a.Store.ListSocialLinks(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// UpsertSocial creates or replaces the link for a platform. Reached through
// RequireLead.
func (a *API) UpsertSocial(c *gin.Context) {
	var input SocialLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	link := &models.SocialLink{Platform: input.Platform, URL: input.URL}
	if err := a.Store.UpsertSocialLink(c.Request.Context(), link); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// DeleteSocial removes a platform's link. Reached through RequireLead.
func (a *API) DeleteSocial(c *gin.Context) {
	if err := a.Store.DeleteSocialLink(c.Request.Context(), c.Param("platform")); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "social link removed"})
}
