// Package saga 多步写入与逆序补偿
//
// 核心思想：
// 1. 将一次多集合写入拆成若干步骤
// 2. 每个步骤有对应的补偿操作
// 3. 某步失败时按逆序执行已完成步骤的补偿
//
// 学习要点：
// - 集合存储没有跨集合事务，Saga只保证"尽力恢复"
// - 补偿操作应当幂等（重复执行结果相同）
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step Saga中的一个步骤
// Action和Compensate都可以为nil（如最后一步通常无需补偿）
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一组按序执行的步骤
type Saga struct {
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSaga 创建Saga
// timeout<=0表示不限时；logger为空时不记录补偿失败
//
// 示例：
//
//	s := saga.NewSaga(30*time.Second, logger)
//	s.AddStep("写入图书", saveBooks, restoreBooks)
//	s.AddStep("写入账户", saveUsers, nil)
//	err := s.Execute(ctx)
func NewSaga(timeout time.Duration, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
		logger:  logger,
	}
}

// AddStep 添加步骤，按添加顺序执行、按逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga
//
// 执行流程：
// 1. 按顺序执行每个步骤的Action
// 2. 某步失败或超时，逆序执行已完成步骤的Compensate
// 3. 返回的错误同时包含失败原因和补偿失败（如有）
//
// 补偿使用脱离超时的Context，避免补偿也因超时中止
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return errors.Join(fmt.Errorf("saga超时: %w", err), s.compensate(context.WithoutCancel(ctx)))
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return errors.Join(
					fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err),
					s.compensate(context.WithoutCancel(ctx)),
				)
			}
		}
		s.executed = append(s.executed, step)
	}

	s.executed = nil
	return nil
}

// compensate 逆序补偿
// 某个补偿失败时继续执行其余补偿，所有失败聚合后返回
func (s *Saga) compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("补偿失败", zap.String("step", step.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("补偿[%s]失败: %w", step.Name, err))
		}
	}
	s.executed = nil
	return errors.Join(errs...)
}
