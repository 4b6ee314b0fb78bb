package service

import (
	"github.com/dukerupert/cakekiosk/internal/domain"
)

// Catalog selection errors - use domain.ENOTFOUND
var (
	ErrCategoryNotFound = domain.Errorf(domain.ENOTFOUND, "", "Category not found")
	ErrBreadNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Bread not available for this category")
	ErrShapeNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Shape not available for this category and size")
	ErrSizeNotFound     = domain.Errorf(domain.ENOTFOUND, "", "Size not found")
	ErrImageNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Gallery image not found")
	ErrNoSizes          = domain.Errorf(domain.ENOTFOUND, "", "No sizes configured")
)

// Wizard validation errors - use domain.EINVALID
var (
	ErrCategoryRequired      = domain.Errorf(domain.EINVALID, "", "Choose a category first")
	ErrInvalidDecorationType = domain.Errorf(domain.EINVALID, "", "Unknown decoration type")
	ErrInvalidPlainDetail    = domain.Errorf(domain.EINVALID, "", "Unknown decoration detail")
	ErrDetailNotOffered      = domain.Errorf(domain.EINVALID, "", "Decoration detail not offered for this coating")
	ErrNotImageDecoration    = domain.Errorf(domain.EINVALID, "", "Gallery images require pre-designed image decoration")
	ErrNotPlainDecoration    = domain.Errorf(domain.EINVALID, "", "Decoration detail requires plain buttercream decoration")
	ErrFlowerQuantityRange   = domain.Errorf(domain.EINVALID, "", "Flower quantity must be between 1 and 10")
	ErrFlowerExtraRequired   = domain.Errorf(domain.EINVALID, "", "Flower quantity requires the artificial flower extra")
	ErrDeliveryTimeRequired  = domain.Errorf(domain.EINVALID, "", "Choose a delivery time")
	ErrDeliveryDateRequired  = domain.Errorf(domain.EINVALID, "", "Choose a delivery date")
	ErrInvalidAge            = domain.Errorf(domain.EINVALID, "", "Age must be zero or positive")
)
