package usecase

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

type Clock interface {
	Now() time.Time
}

type OrderNumberGenerator interface {
	Next(now time.Time) string
}

const (
	base36               = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberSuffixLen = 6
)

// "ORD" + エポックミリ秒 + ランダム6桁（36進）
// 一意性はDBの一意制約で保証し、衝突したら採番し直す
type RandomOrderNumbers struct{}

func (RandomOrderNumbers) Next(now time.Time) string {
	bound := big.NewInt(int64(len(base36)))
	suffix := make([]byte, orderNumberSuffixLen)
	for i := range suffix {
		// 0〜35 を一様に引く
		n, err := rand.Int(rand.Reader, bound)
		if err != nil {
			panic(err)
		}
		suffix[i] = base36[n.Int64()]
	}
	return "ORD" + strconv.FormatInt(now.UnixMilli(), 10) + string(suffix)
}
