// services/resource_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"resource-booking-backend/models"

	"gorm.io/gorm"
)

// ResourceService owns resource rows and the cascade that removes them.
type ResourceService struct {
	DB *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{DB: db}
}

// CascadeResult makes the best-effort cascade observable: the resource row
// may be gone while some dependent deletes failed.
type CascadeResult struct {
	ResourceDeleted bool
	DependentErrors []error
}

// ListOthers returns resources not owned by the given user, for browsing.
func (s *ResourceService) ListOthers(username string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.DB.Where("owner != ?", username).Order("name").Find(&resources).Error
	return resources, err
}

// ListMine returns resources owned by the given user.
func (s *ResourceService) ListMine(username string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.DB.Where("owner = ?", username).Order("name").Find(&resources).Error
	return resources, err
}

func (s *ResourceService) Get(id uint) (models.Resource, error) {
	var resource models.Resource
	if err := s.DB.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, fmt.Errorf("%w: resource %d", ErrNotFound, id)
		}
		return models.Resource{}, err
	}
	return resource, nil
}

// Types lists the seeded resource types ordered by name.
func (s *ResourceService) Types() ([]models.ResourceType, error) {
	var types []models.ResourceType
	err := s.DB.Order("name").Find(&types).Error
	return types, err
}

// Create inserts a resource owned by the acting user. typeValue may be a type
// name or a numeric id into the types table; unknown ids are rejected.
func (s *ResourceService) Create(name, typeValue, owner string, imageURL *string) (models.Resource, error) {
	typeName := typeValue
	if id, err := strconv.Atoi(typeValue); err == nil {
		var t models.ResourceType
		if err := s.DB.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Resource{}, fmt.Errorf("%w: invalid type id", ErrValidation)
			}
			return models.Resource{}, err
		}
		typeName = t.Name
	}

	resource := models.Resource{
		Name:  name,
		Type:  typeName,
		Owner: owner,
		Image: imageURL,
	}
	if err := s.DB.Create(&resource).Error; err != nil {
		return models.Resource{}, err
	}
	return resource, nil
}

// Delete removes a resource and cascades to its bookings and availability
// windows. Dependent deletes are best effort: a failure is logged and
// collected, and the resource row is still removed.
func (s *ResourceService) Delete(id uint, username string) (CascadeResult, error) {
	result := CascadeResult{}

	resource, err := s.Get(id)
	if err != nil {
		return result, err
	}
	if resource.Owner != username {
		return result, fmt.Errorf("%w: not the resource owner", ErrForbidden)
	}

	if err := s.DB.Where("resource_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
		log.Printf("could not delete bookings for resource %d: %v", id, err)
		result.DependentErrors = append(result.DependentErrors, err)
	}
	if err := s.DB.Where("resource_id = ?", id).Delete(&models.Availability{}).Error; err != nil {
		log.Printf("could not delete availabilities for resource %d: %v", id, err)
		result.DependentErrors = append(result.DependentErrors, err)
	}

	if err := s.DB.Delete(&models.Resource{}, id).Error; err != nil {
		return result, err
	}
	result.ResourceDeleted = true
	return result, nil
}
