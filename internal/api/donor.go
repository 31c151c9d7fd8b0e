package api

import (
	"net/http"

	"donation_system/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDonorsHandler returns one page of active donors
func ListDonorsHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		pageNo, pageSize, err := pageParams(c)
		if err != nil {
			respondError(c, err)
			return
		}
		page, err := svc.GetDonors(c.Request.Context(), p.FoundationID, pageNo, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"pageNo":   pageNo,
			"pageSize": pageSize,
			"total":    page.Total,
			"donors":   page.Items,
		})
	}
}

func CreateDonorHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req service.DonorInput
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		donor, err := svc.CreateDonor(c.Request.Context(), p.FoundationID, req, p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, donor)
	}
}

func GetDonorHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donor, err := svc.GetDonorByID(c.Request.Context(), p.FoundationID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donor)
	}
}

func UpdateDonorHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req service.DonorUpdate
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		donor, err := svc.UpdateDonor(c.Request.Context(), p.FoundationID, c.Param("id"), req, p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donor)
	}
}

// DeleteDonorHandler soft-deletes a donor
func DeleteDonorHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		if err := svc.DeleteDonor(c.Request.Context(), p.FoundationID, c.Param("id"), p.ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func RestoreDonorHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donor, err := svc.RestoreDonor(c.Request.Context(), p.FoundationID, c.Param("id"), p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donor)
	}
}

func ListTrashedDonorsHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donors, err := svc.ListTrashedDonors(c.Request.Context(), p.FoundationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donors)
	}
}

func CountDonorsHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		total, err := svc.CountDonors(c.Request.Context(), p.FoundationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	}
}

// ExistByPanHandler is the console's pre-flight PAN lookup before adding a donation
func ExistByPanHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donor, err := svc.IsExistByPan(c.Request.Context(), p.FoundationID, c.Query("pan"))
		if err != nil {
			respondError(c, err)
			return
		}
		if donor == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"exists": true, "donor": donor.Ref()})
	}
}

// FetchDonationByPanHandler returns a donor and all their active donations
func FetchDonationByPanHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		donor, err := svc.IsExistByPan(ctx, p.FoundationID, c.Query("pan"))
		if err != nil {
			respondError(c, err)
			return
		}
		if donor == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
			return
		}
		donations, err := svc.GetDonationsByDonorID(ctx, p.FoundationID, donor.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(donations) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No donations found for this donor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"donor": donor.Ref(), "donations": donations})
	}
}

func DonorDonationsHandler(svc *service.DonorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if _, err := svc.GetDonorByID(ctx, p.FoundationID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		donations, err := svc.GetDonationsByDonorID(ctx, p.FoundationID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donations)
	}
}
