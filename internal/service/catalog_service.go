package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vegetable-orders/internal/database"
	"vegetable-orders/internal/models"

	"gorm.io/gorm"
)

// ImageStore persists uploaded vegetable images.
type ImageStore interface {
	Save(original string, r io.Reader) (string, error)
	Remove(name string) error
}

type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// VegetableForm carries raw form values. Price and Stock are parsed and
// checked by the service.
type VegetableForm struct {
	Name        string
	Price       string
	Description string
	Stock       string
	ProducerID  uint // ignored on update
	Image       *ImageUpload
	RemoveImage bool
}

type vegetableFields struct {
	name        string
	price       int
	description string
	stock       int
}

func (f VegetableForm) validate() (vegetableFields, error) {
	var out vegetableFields

	out.name = strings.TrimSpace(f.Name)
	if out.name == "" {
		return out, newValidationError("name", "is required")
	}
	price, err := parseNonNegative("price", f.Price)
	if err != nil {
		return out, err
	}
	stock, err := parseNonNegative("stock", f.Stock)
	if err != nil {
		return out, err
	}
	out.price = price
	out.stock = stock
	out.description = strings.TrimSpace(f.Description)
	return out, nil
}

// CatalogService manages vegetables on behalf of producers.
type CatalogService struct {
	db     *gorm.DB
	images ImageStore
	log    *slog.Logger
}

func NewCatalogService(db *gorm.DB, images ImageStore, log *slog.Logger) *CatalogService {
	return &CatalogService{db: db, images: images, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Vegetable, error) {
	var vegetables []models.Vegetable
	if err := s.db.WithContext(ctx).Order("id asc").Find(&vegetables).Error; err != nil {
		return nil, fmt.Errorf("list vegetables: %w", err)
	}
	return vegetables, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.Vegetable, error) {
	return findVegetable(s.db.WithContext(ctx), id)
}

func findVegetable(db *gorm.DB, id uint) (*models.Vegetable, error) {
	var veg models.Vegetable
	if err := db.First(&veg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load vegetable %d: %w", id, err)
	}
	return &veg, nil
}

// Producers lists users with the producer role.
func (s *CatalogService) Producers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleProducer).
		Order("id asc").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list producers: %w", err)
	}
	return users, nil
}

// Create validates the form, stores the image if one was uploaded and inserts
// the vegetable. A zero ProducerID means the first producer.
func (s *CatalogService) Create(ctx context.Context, form VegetableForm) (*models.Vegetable, error) {
	fields, err := form.validate()
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	producer, err := s.resolveProducer(db, form.ProducerID)
	if err != nil {
		return nil, err
	}

	image, err := s.saveImage(form.Image)
	if err != nil {
		return nil, err
	}

	veg := models.Vegetable{
		Name:        fields.name,
		Price:       fields.price,
		Description: fields.description,
		Stock:       fields.stock,
		Image:       image,
		ProducerID:  producer.ID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&veg).Error; err != nil {
			return fmt.Errorf("create vegetable: %w", err)
		}
		return database.CreateAuditLog(tx, "vegetable", veg.ID, "create", producer.EmployeeID,
			fmt.Sprintf("%s, price %d, stock %d", veg.Name, veg.Price, veg.Stock))
	})
	if err != nil {
		s.discardImage(image)
		return nil, err
	}

	s.log.Info("vegetable created", "vegetable_id", veg.ID, "name", veg.Name, "producer_id", veg.ProducerID)
	return &veg, nil
}

func (s *CatalogService) resolveProducer(db *gorm.DB, id uint) (*models.User, error) {
	q := db.Where("role = ?", models.RoleProducer)
	if id != 0 {
		q = q.Where("id = ?", id)
	}

	var producer models.User
	if err := q.Order("id asc").First(&producer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("producer_id", "unknown producer")
		}
		return nil, fmt.Errorf("load producer: %w", err)
	}
	return &producer, nil
}

// Update replaces the mutable fields of an existing vegetable. A new image
// replaces the old one; RemoveImage drops it.
func (s *CatalogService) Update(ctx context.Context, id uint, form VegetableForm) (*models.Vegetable, error) {
	db := s.db.WithContext(ctx)

	veg, err := findVegetable(db, id)
	if err != nil {
		return nil, err
	}

	fields, err := form.validate()
	if err != nil {
		return nil, err
	}

	newImage, err := s.saveImage(form.Image)
	if err != nil {
		return nil, err
	}

	oldImage := veg.Image
	switch {
	case newImage != "":
		veg.Image = newImage
	case form.RemoveImage:
		veg.Image = ""
	}
	veg.Name = fields.name
	veg.Price = fields.price
	veg.Description = fields.description
	veg.Stock = fields.stock

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Vegetable{}).
			Where("id = ?", veg.ID).
			Select("name", "price", "description", "stock", "image").
			Updates(map[string]interface{}{
				"name":        veg.Name,
				"price":       veg.Price,
				"description": veg.Description,
				"stock":       veg.Stock,
				"image":       veg.Image,
			})
		if res.Error != nil {
			return fmt.Errorf("update vegetable %d: %w", veg.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return database.CreateAuditLog(tx, "vegetable", veg.ID, "update", producerActor(veg.ProducerID),
			fmt.Sprintf("%s, price %d, stock %d", veg.Name, veg.Price, veg.Stock))
	})
	if err != nil {
		s.discardImage(newImage)
		return nil, err
	}

	if oldImage != "" && oldImage != veg.Image {
		s.discardImage(oldImage)
	}

	s.log.Info("vegetable updated", "vegetable_id", veg.ID, "name", veg.Name)
	return veg, nil
}

// Delete removes the vegetable and its image. Orders that reference it are
// kept as they are.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)

	var deleted models.Vegetable
	err := db.Transaction(func(tx *gorm.DB) error {
		veg, err := findVegetable(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Vegetable{}, veg.ID).Error; err != nil {
			return fmt.Errorf("delete vegetable %d: %w", veg.ID, err)
		}
		deleted = *veg
		return database.CreateAuditLog(tx, "vegetable", veg.ID, "delete", producerActor(veg.ProducerID), veg.Name)
	})
	if err != nil {
		return err
	}

	if deleted.Image != "" {
		s.discardImage(deleted.Image)
	}

	s.log.Info("vegetable deleted", "vegetable_id", deleted.ID, "name", deleted.Name)
	return nil
}

func (s *CatalogService) saveImage(img *ImageUpload) (string, error) {
	if img == nil || img.Content == nil {
		return "", nil
	}
	name, err := s.images.Save(img.Filename, img.Content)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

func (s *CatalogService) discardImage(name string) {
	if name == "" {
		return
	}
	if err := s.images.Remove(name); err != nil {
		s.log.Warn("failed to remove image", "image", name, "error", err)
	}
}

func producerActor(id uint) string {
	return fmt.Sprintf("producer #%d", id)
}
