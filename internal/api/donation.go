package api

import (
	"bytes"
	"net/http"

	"donation_system/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDonationsHandler returns one page of active donations, newest first
func ListDonationsHandler(svc *service.DonationService) gin.HandlerFunc {
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
		page, err := svc.GetDonations(c.Request.Context(), p.FoundationID, pageNo, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"totalRecords": page.Total,
			"pageCount":    pageCount(page.Total, pageSize),
			"currentPage":  pageNo,
			"pageSize":     pageSize,
			"data":         page.Items,
		})
	}
}

// CreateDonationHandler records a donation; the response embeds the donor
func CreateDonationHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req service.DonationInput
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		donation, err := svc.CreateDonation(c.Request.Context(), p.FoundationID, req, p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, donation)
	}
}

func GetDonationHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donation, err := svc.GetDonationByID(c.Request.Context(), p.FoundationID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donation)
	}
}

func UpdateDonationHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req service.DonationUpdate
		if err := bindJSON(c, &req); err != nil {
			respondError(c, err)
			return
		}
		donation, err := svc.UpdateDonation(c.Request.Context(), p.FoundationID, c.Param("id"), req, p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donation)
	}
}

func DeleteDonationHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		if err := svc.DeleteDonation(c.Request.Context(), p.FoundationID, c.Param("id"), p.ID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func RestoreDonationHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donation, err := svc.RestoreDonation(c.Request.Context(), p.FoundationID, c.Param("id"), p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donation)
	}
}

// SearchDonationsHandler searches by donor name and/or PAN (?name=&pan=)
func SearchDonationsHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donations, err := svc.SearchDonations(c.Request.Context(), p.FoundationID, c.Query("name"), c.Query("pan"))
		if err != nil {
			respondError(c, err)
			return
		}
		if len(donations) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No donations found"})
			return
		}
		c.JSON(http.StatusOK, donations)
	}
}

func MarkPrintedHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donation, err := svc.MarkPrinted(c.Request.Context(), p.FoundationID, c.Param("id"), p.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donation)
	}
}

func CountDonationsHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		total, err := svc.CountDonations(c.Request.Context(), p.FoundationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"total": total})
	}
}

func ListTrashedDonationsHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		donations, err := svc.ListTrashedDonations(c.Request.Context(), p.FoundationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, donations)
	}
}

func ReceiptHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		receipt, err := svc.Receipt(c.Request.Context(), p.FoundationID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, receipt)
	}
}

// ExportDonationsHandler downloads the donation report as CSV, optionally
// limited to a donation date range (?from=YYYY-MM-DD&to=YYYY-MM-DD)
func ExportDonationsHandler(svc *service.DonationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var (
			f   service.ExportFilter
			err error
		)
		if f.From, err = queryDate(c, "from", false); err != nil {
			respondError(c, err)
			return
		}
		if f.To, err = queryDate(c, "to", true); err != nil {
			respondError(c, err)
			return
		}
		var buf bytes.Buffer
		if err := svc.ExportDonations(c.Request.Context(), p.FoundationID, f, &buf); err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="donation-report.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}
