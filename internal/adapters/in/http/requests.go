package http

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
)

type registerRequest struct {
	Email         string `json:"email"          validate:"required,email"`
	Password      string `json:"password"       validate:"required"`
	Name          string `json:"name"           validate:"required"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
}

type agentRegisterRequest struct {
	Email         string `json:"email"          validate:"required,email"`
	Password      string `json:"password"       validate:"required"`
	Name          string `json:"name"           validate:"required"`
	ContactNumber string `json:"contact_number"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
}

type placeRequest struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

func (p placeRequest) toPlace() (kernel.Place, error) {
	return kernel.NewPlace(p.Pincode, p.City, p.State)
}

type createDeliveryRequest struct {
	PickupAddress   string       `json:"pickup_address"   validate:"required"`
	DeliveryAddress string       `json:"delivery_address" validate:"required"`
	PickupPlace     placeRequest `json:"pickup_place"`
	DeliveryPlace   placeRequest `json:"delivery_place"`
	Weight          float64      `json:"weight"           validate:"gt=0"`
	PackageType     string       `json:"package_type"     validate:"required"`
	PickupDate      time.Time    `json:"pickup_date"      validate:"required"`
}

func (r createDeliveryRequest) toDetails() (delivery.Details, error) {
	pickup, err := r.PickupPlace.toPlace()
	if err != nil {
		return delivery.Details{}, err
	}
	dropoff, err := r.DeliveryPlace.toPlace()
	if err != nil {
		return delivery.Details{}, err
	}
	packageType, err := delivery.ParsePackageType(r.PackageType)
	if err != nil {
		return delivery.Details{}, err
	}
	return delivery.Details{
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		PickupPlace:     pickup,
		DeliveryPlace:   dropoff,
		WeightKg:        r.Weight,
		PackageType:     packageType,
		PickupDate:      r.PickupDate,
	}, nil
}

// editDeliveryRequest is a partial update: absent fields keep their value.
type editDeliveryRequest struct {
	PickupAddress   *string       `json:"pickup_address"`
	DeliveryAddress *string       `json:"delivery_address"`
	PickupPlace     *placeRequest `json:"pickup_place"`
	DeliveryPlace   *placeRequest `json:"delivery_place"`
	Weight          *float64      `json:"weight"       validate:"omitempty,gt=0"`
	PackageType     *string       `json:"package_type"`
	PickupDate      *time.Time    `json:"pickup_date"`
}

func (r editDeliveryRequest) toPatch() (delivery.Patch, error) {
	patch := delivery.Patch{
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		WeightKg:        r.Weight,
		PickupDate:      r.PickupDate,
	}
	if r.PickupPlace != nil {
		place, err := r.PickupPlace.toPlace()
		if err != nil {
			return delivery.Patch{}, err
		}
		patch.PickupPlace = &place
	}
	if r.DeliveryPlace != nil {
		place, err := r.DeliveryPlace.toPlace()
		if err != nil {
			return delivery.Patch{}, err
		}
		patch.DeliveryPlace = &place
	}
	if r.PackageType != nil {
		packageType, err := delivery.ParsePackageType(*r.PackageType)
		if err != nil {
			return delivery.Patch{}, err
		}
		patch.PackageType = &packageType
	}
	return patch, nil
}

type estimatePriceRequest struct {
	PickupPlace   placeRequest `json:"pickup_place"`
	DeliveryPlace placeRequest `json:"delivery_place"`
	Weight        float64      `json:"weight"`
	PackageType   string       `json:"package_type" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

type assignDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid"`
}

type createTicketRequest struct {
	DeliveryID  string `json:"delivery_id" validate:"omitempty,uuid"`
	Subject     string `json:"subject"     validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Priority    string `json:"priority"`
}

type ticketStatusRequest struct {
	Status   string `json:"status"   validate:"required"`
	Priority string `json:"priority"`
}

type reassignTicketRequest struct {
	AgentID string `json:"agent_id" validate:"required,uuid"`
}

type noteRequest struct {
	Note string `json:"note" validate:"required"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating"  validate:"required"`
	Comment string `json:"comment"`
}

type reviewRequest struct {
	DeliveryID string `json:"delivery_id" validate:"required,uuid"`
	Rating     int    `json:"rating"      validate:"required"`
	Comment    string `json:"comment"`
}
