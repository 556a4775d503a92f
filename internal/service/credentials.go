package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// generateTempPassword 生成 12 位随机临时密码
// 仅在创建响应中明文返回一次，库中只存 bcrypt 哈希
func generateTempPassword() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return raw[:12]
}

// hashPassword bcrypt 哈希
func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
