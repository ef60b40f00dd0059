package repository

import (
	"errors"
	"reflect"

	"gorm.io/gorm"
)

// Base 通用 CRUD 仓库，各实体仓库内嵌后按需扩展。
type Base[T any] struct {
	db *gorm.DB
}

// NewBase 创建通用仓库
func NewBase[T any](db *gorm.DB) Base[T] {
	return Base[T]{db: db}
}

// DB 暴露底层连接，供实体仓库组装查询
func (r *Base[T]) DB() *gorm.DB {
	return r.db
}

// Create 创建记录并回读数据库生成的字段
func (r *Base[T]) Create(entity *T) error {
	if err := r.db.Create(entity).Error; err != nil {
		return err
	}
	id, ok := primaryKeyOf(entity)
	if !ok {
		return nil
	}
	return r.db.First(entity, id).Error
}

// GetByID 按主键查询，未命中返回 nil, nil
func (r *Base[T]) GetByID(id uint) (*T, error) {
	var entity T
	if err := r.db.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetAll 分页查询全部记录
func (r *Base[T]) GetAll(page, pageSize int) ([]T, int64, error) {
	var entity T
	query := r.db.Model(&entity)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var entities []T
	if err := query.Order("id DESC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Update 按主键部分更新，未命中返回 gorm.ErrRecordNotFound
func (r *Base[T]) Update(id uint, fields map[string]interface{}) (*T, error) {
	var entity T
	if err := r.db.First(&entity, id).Error; err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.Model(&entity).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	if err := r.db.First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete 按主键删除，返回删除前的记录快照，未命中返回 gorm.ErrRecordNotFound
func (r *Base[T]) Delete(id uint) (*T, error) {
	var entity T
	if err := r.db.First(&entity, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// primaryKeyOf 取出实体的 ID 字段值，供 Create 后回读
func primaryKeyOf(entity interface{}) (uint, bool) {
	value := reflect.ValueOf(entity)
	for value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return 0, false
	}
	field := value.FieldByName("ID")
	if !field.IsValid() || !field.CanUint() {
		return 0, false
	}
	return uint(field.Uint()), true
}
