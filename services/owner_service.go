package services

import (
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"
)

// OwnerService manages restaurant operator accounts.
type OwnerService struct {
	ownerRepo *repository.OwnerRepository
	restRepo  *repository.RestaurantRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewOwnerService(owners *repository.OwnerRepository, rests *repository.RestaurantRepository, secret string, ttl time.Duration) *OwnerService {
	return &OwnerService{ownerRepo: owners, restRepo: rests, jwtSecret: secret, jwtTTL: ttl}
}

type OwnerRegisterIn struct {
	Fullname      string `json:"fullname"`
	Cnicno        string `json:"cnicno"`
	Phoneno       string `json:"phoneno"`
	BusinessEmail string `json:"businessemail"`
	Password      string `json:"password"`
}

type OwnerAuthResult struct {
	ID    uint          `json:"id,omitempty"`
	Owner *entity.Owner `json:"owner"`
	Token string        `json:"token"`
}

func (s *OwnerService) Register(in OwnerRegisterIn) (*OwnerAuthResult, error) {
	if err := requireFields(
		field{"fullname", in.Fullname},
		field{"cnicno", in.Cnicno},
		field{"phoneno", in.Phoneno},
		field{"businessemail", in.BusinessEmail},
		field{"password", in.Password},
	); err != nil {
		return nil, err
	}
	email := normEmail(in.BusinessEmail)
	taken, err := s.ownerRepo.EmailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invalid("Owner already exists")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	o := &entity.Owner{
		Fullname:      strings.TrimSpace(in.Fullname),
		Cnicno:        strings.TrimSpace(in.Cnicno),
		Phoneno:       strings.TrimSpace(in.Phoneno),
		BusinessEmail: email,
		Password:      hashed,
		Role:          entity.RoleOwner,
	}
	if err := s.ownerRepo.Create(o); err != nil {
		return nil, err
	}
	token, err := utils.GenerateToken(o.ID, entity.RoleOwner, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &OwnerAuthResult{ID: o.ID, Owner: o, Token: token}, nil
}

// Login needs the CNIC number to match as well as the email and password.
func (s *OwnerService) Login(cnicno, email, password string) (*OwnerAuthResult, error) {
	if err := requireFields(
		field{"cnicno", cnicno},
		field{"businessemail", email},
		field{"password", password},
	); err != nil {
		return nil, err
	}
	o, err := s.ownerRepo.FindByEmail(normEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, badCreds("Invalid credentials")
		}
		return nil, err
	}
	if o.Cnicno != strings.TrimSpace(cnicno) || !utils.CheckPassword(o.Password, password) {
		return nil, badCreds("Invalid credentials")
	}
	token, err := utils.GenerateToken(o.ID, entity.RoleOwner, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &OwnerAuthResult{Owner: o, Token: token}, nil
}

func (s *OwnerService) Get(id uint) (*entity.Owner, error) {
	o, err := s.ownerRepo.FindByID(id)
	if err != nil {
		return nil, orNotFound(err, "Owner not found")
	}
	return o, nil
}

func (s *OwnerService) GetWithRestaurant(id uint) (*entity.Owner, error) {
	o, err := s.ownerRepo.FindWithRestaurant(id)
	if err != nil {
		return nil, orNotFound(err, "Owner not found")
	}
	return o, nil
}

// Token issues a fresh token for the owner.
func (s *OwnerService) Token(o *entity.Owner) (string, error) {
	return utils.GenerateToken(o.ID, entity.RoleOwner, s.jwtSecret, s.jwtTTL)
}

type OwnerUpdateIn struct {
	Fullname      string `json:"fullname"`
	Cnicno        string `json:"cnicno"`
	Phoneno       string `json:"phoneno"`
	BusinessEmail string `json:"businessemail"`
}

func (s *OwnerService) UpdateProfile(callerID, id uint, in OwnerUpdateIn) (*entity.Owner, error) {
	if callerID != id {
		return nil, forbidden("You can only update your own profile")
	}
	updates := map[string]any{}
	if v := strings.TrimSpace(in.Fullname); v != "" {
		updates["fullname"] = v
	}
	if v := strings.TrimSpace(in.Cnicno); v != "" {
		updates["cnicno"] = v
	}
	if v := strings.TrimSpace(in.Phoneno); v != "" {
		updates["phoneno"] = v
	}
	if v := normEmail(in.BusinessEmail); v != "" {
		taken, err := s.ownerRepo.EmailTaken(v, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalid("Email is already in use by another account")
		}
		updates["business_email"] = v
	}
	if len(updates) > 0 {
		if err := s.ownerRepo.Updates(id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

// ResolveRestaurant loads the owner and the restaurant they run.
// The middleware answers every failure with 401.
func (s *OwnerService) ResolveRestaurant(ownerID uint) (*entity.Owner, *entity.Restaurant, error) {
	o, err := s.ownerRepo.FindByID(ownerID)
	if err != nil {
		return nil, nil, orNotFound(err, "No Owner Founded")
	}
	if o.RestaurantID == nil {
		return nil, nil, notFound("No Restaurant Linked to Owner")
	}
	rest, err := s.restRepo.FindByID(*o.RestaurantID)
	if err != nil {
		return nil, nil, orNotFound(err, "No Restaurant Found")
	}
	if rest.OwnerID != o.ID {
		return nil, nil, forbidden("Restaurant does not belong to this owner")
	}
	return o, rest, nil
}
