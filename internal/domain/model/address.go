package model

// 注文時点の配送先スナップショット
// 注文行にJSONで保存する（住所録が後で変わっても注文は変わらない）
type ShippingAddress struct {
	//宛名
	FullName string `json:"fullName"`

	//電話番号
	Phone string `json:"phone"`

	//番地など
	Address string `json:"address"`

	//区・郡
	Ward     string `json:"ward,omitempty"`
	District string `json:"district,omitempty"`

	//市・省
	City string `json:"city"`

	Note string `json:"note,omitempty"`
}

// 最低限の項目が揃っているか
func (a ShippingAddress) IsZero() bool {
	return a.FullName == "" && a.Phone == "" && a.Address == "" && a.City == ""
}
