package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"vegetable-orders/internal/service"

	"github.com/gin-gonic/gin"
)

var allowedImageExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// PRODUCER CATALOG

func (h *Handler) AdminPage(c *gin.Context) {
	vegetables, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to list vegetables", "error", err)
		c.String(http.StatusInternalServerError, "failed to load catalog")
		return
	}

	h.render(c, http.StatusOK, "admin.html", gin.H{
		"vegetables": vegetables,
	})
}

// CREATE

func (h *Handler) ShowAddVegetable(c *gin.Context) {
	producers, err := h.Catalog.Producers(c.Request.Context())
	if err != nil {
		h.Log.Error("failed to list producers", "error", err)
		c.String(http.StatusInternalServerError, "failed to load producers")
		return
	}

	h.render(c, http.StatusOK, "add_vegetable.html", gin.H{
		"producers": producers,
	})
}

func (h *Handler) AddVegetable(c *gin.Context) {
	form, closeImage, err := h.vegetableForm(c)
	if err != nil {
		h.flash(c, flashDanger, err.Error())
		c.Redirect(http.StatusFound, "/add")
		return
	}
	defer closeImage()

	if pid, err := strconv.ParseUint(c.PostForm("producer_id"), 10, 64); err == nil {
		form.ProducerID = uint(pid)
	}

	veg, err := h.Catalog.Create(c.Request.Context(), form)
	if err != nil {
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, "/add")
		return
	}

	h.flash(c, flashSuccess, fmt.Sprintf("%s added to the catalog!", veg.Name))
	c.Redirect(http.StatusFound, "/admin")
}

// EDIT

func (h *Handler) ShowEditVegetable(c *gin.Context) {
	id, ok := vegetableID(c)
	if !ok {
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	veg, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	h.render(c, http.StatusOK, "edit_vegetable.html", gin.H{
		"vegetable": veg,
	})
}

func (h *Handler) EditVegetable(c *gin.Context) {
	id, ok := vegetableID(c)
	if !ok {
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	editURL := fmt.Sprintf("/edit/%d", id)

	form, closeImage, err := h.vegetableForm(c)
	if err != nil {
		h.flash(c, flashDanger, err.Error())
		c.Redirect(http.StatusFound, editURL)
		return
	}
	defer closeImage()
	form.RemoveImage = c.PostForm("remove_image") != ""

	veg, err := h.Catalog.Update(c.Request.Context(), id, form)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/admin")
		return
	case err != nil:
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, editURL)
		return
	}

	h.flash(c, flashSuccess, fmt.Sprintf("%s updated!", veg.Name))
	c.Redirect(http.StatusFound, "/admin")
}

// DELETE

func (h *Handler) DeleteVegetable(c *gin.Context) {
	id, ok := vegetableID(c)
	if !ok {
		h.flash(c, flashDanger, msgNotFound)
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.flash(c, flashDanger, h.failureMessage(c, err))
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	h.flash(c, flashSuccess, "Vegetable deleted!")
	c.Redirect(http.StatusFound, "/admin")
}

// vegetableForm reads the shared create/edit fields. The returned func closes
// the uploaded image, if any.
func (h *Handler) vegetableForm(c *gin.Context) (service.VegetableForm, func(), error) {
	form := service.VegetableForm{
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Description: c.PostForm("description"),
		Stock:       c.PostForm("stock"),
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, func() {}, nil
	case err != nil:
		return form, func() {}, errors.New("Could not read the uploaded image.")
	case fh.Filename == "":
		return form, func() {}, nil
	}

	if err := h.checkImage(fh); err != nil {
		return form, func() {}, err
	}

	f, err := fh.Open()
	if err != nil {
		return form, func() {}, errors.New("Could not read the uploaded image.")
	}
	form.Image = &service.ImageUpload{Filename: fh.Filename, Content: f}
	return form, func() { _ = f.Close() }, nil
}

func (h *Handler) checkImage(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return errors.New("Images must be PNG, JPEG, GIF or WebP.")
	}
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		return fmt.Errorf("The image is larger than %d MB.", h.MaxUploadBytes>>20)
	}
	return nil
}
