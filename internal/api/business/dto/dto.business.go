package businessdto

// ChannelIdentityInput định danh kênh trong request tạo/cập nhật business
type ChannelIdentityInput struct {
	Channel    string `json:"channel" bson:"channel" validate:"required,channel"`
	ExternalId string `json:"externalId" bson:"externalId" validate:"required"`
}

// PlanLimitsInput hạn mức gói trong request tạo/cập nhật business
type PlanLimitsInput struct {
	MonthlyMessages int64 `json:"monthlyMessages" bson:"monthlyMessages" validate:"gte=0"`
	MonthlyOrders   int64 `json:"monthlyOrders" bson:"monthlyOrders" validate:"gte=0"`
}

// BusinessCreateInput dữ liệu đầu vào khi tạo business
type BusinessCreateInput struct {
	Name     string                 `json:"name" bson:"name" validate:"required,no_xss"`
	Active   bool                   `json:"active" bson:"active"`
	Plan     string                 `json:"plan" bson:"plan" validate:"required"`
	Limits   PlanLimitsInput        `json:"limits" bson:"limits"`
	Channels []ChannelIdentityInput `json:"channels" bson:"channels" validate:"dive"`
	Currency string                 `json:"currency" bson:"currency"`
}

// BusinessUpdateInput dữ liệu đầu vào khi cập nhật business (partial update)
type BusinessUpdateInput struct {
	Name     string                 `json:"name" bson:"name" validate:"omitempty,no_xss"`
	Plan     string                 `json:"plan" bson:"plan"`
	Limits   *PlanLimitsInput       `json:"limits" bson:"limits,omitempty"`
	Channels []ChannelIdentityInput `json:"channels" bson:"channels,omitempty" validate:"omitempty,dive"`
	Currency string                 `json:"currency" bson:"currency"`
}
