package sitecontroller

import (
	"net/http"

	"WORKSITE/models"

	"github.com/gin-gonic/gin"
)

func GetAllSites(c *gin.Context) {
	var sites []models.Site
	if err := models.DB.Order("id").Find(&sites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

func GetSite(c *gin.Context) {
	var site models.Site
	if err := models.DB.First(&site, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site": site})
}
