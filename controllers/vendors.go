package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/utils"
)

// AddVendorInput is the request body for adding a vendor.
type AddVendorInput struct {
	Name     string               `json:"name" binding:"required"`
	Category string               `json:"category,omitempty"`
	Status   string               `json:"status,omitempty" binding:"omitempty,vendorstatus"`
	Contact  models.VendorContact `json:"contact,omitempty"`
	Pricing  models.VendorPricing `json:"pricing,omitempty"`
	Notes    string               `json:"notes,omitempty"`
}

// ListVendors returns the vendor list.
func ListVendors(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	vendors, err := events.ListVendors(ctx, eventID, userID)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "vendors", vendors)
}

// GetVendor returns one vendor by its stable id.
func GetVendor(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	vendor, err := events.GetVendor(ctx, eventID, userID, c.Param("vendorId"))
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "vendor", vendor)
}

// AddVendor appends a vendor.
func AddVendor(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input AddVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	vendor, err := events.AddVendor(ctx, eventID, userID, services.VendorParams{
		Name:     input.Name,
		Category: input.Category,
		Status:   models.VendorStatus(input.Status),
		Contact:  input.Contact,
		Pricing:  input.Pricing,
		Notes:    input.Notes,
	})
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "vendor added", vendor)
}

// UpdateVendor patches a vendor by id. Nested contact and pricing fields
// merge sub-field by sub-field.
func UpdateVendor(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.VendorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.Fail(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	vendor, err := events.UpdateVendor(ctx, eventID, userID, c.Param("vendorId"), patch)
	if err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "vendor updated", vendor)
}

// DeleteVendor removes a vendor by id.
func DeleteVendor(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := listCtx()
	defer cancel()

	if err := events.DeleteVendor(ctx, eventID, userID, c.Param("vendorId")); err != nil {
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "vendor removed", nil)
}

// UploadVendorDocument stores a multipart file in the blob store and records
// its filename handle on the vendor. Owner or admin only. The access gate
// runs before any bytes are written, so a rejected caller never touches the
// bucket; if the attach fails after the upload, the blob is removed again.
func UploadVendorDocument(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	vendorID := c.Param("vendorId")

	ctx, cancel := listCtx()
	defer cancel()

	if err := events.CanAttachVendorDocument(ctx, eventID, userID, vendorID); err != nil {
		utils.FailErr(c, err)
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "document file required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "could not read document")
		return
	}
	defer file.Close()

	filename, err := documents.Upload(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("vendor document upload failed", "err", err)
		utils.Fail(c, http.StatusInternalServerError, "something went wrong")
		return
	}

	vendor, err := events.AttachVendorDocument(ctx, eventID, userID, vendorID, filename)
	if err != nil {
		if derr := documents.Delete(filename); derr != nil {
			slog.Error("orphaned vendor document cleanup failed", "filename", filename, "err", derr)
		}
		utils.FailErr(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "document uploaded", gin.H{
		"filename": filename,
		"vendor":   vendor,
	})
}

// DownloadVendorDocument streams a stored document with its content type.
func DownloadVendorDocument(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	filename := c.Param("filename")

	ctx, cancel := opCtx()
	defer cancel()

	if err := events.VendorHasDocument(ctx, eventID, userID, c.Param("vendorId"), filename); err != nil {
		utils.FailErr(c, err)
		return
	}

	stream, contentType, length, err := documents.Open(filename)
	if err != nil {
		slog.Error("vendor document open failed", "filename", filename, "err", err)
		utils.FailErr(c, models.ErrNotFound)
		return
	}
	defer stream.Close()

	c.DataFromReader(http.StatusOK, length, contentType, stream, nil)
}
