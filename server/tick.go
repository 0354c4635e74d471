package server

import "time"

// StartTicker 启动房间的 Tick 循环（单协程推进世界）
func (r *Room) StartTicker() {
	if r.tickerStarted {
		return
	}
	r.tickerStarted = true
	Log.Infow("ticker started", "room", r.ID, "interval", r.tick)
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.tick)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				Log.Infow("ticker stopped", "room", r.ID)
				return
			case <-ticker.C:
				r.Step()
			}
		}
	}()
}

// Stop 停止 Tick 循环并等待其退出（仅用于进程退出与测试）
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	if r.tickerStarted {
		<-r.done
	}
}

// Step 推进一个 Tick：更新所有玩家 → 广播结果
func (r *Room) Step() {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.IncTickPanic()
			Log.Errorw("tick panic recovered", "room", r.ID, "tick", r.TickSeq(), "panic", rec)
		}
	}()

	m := r.Motion()
	var failed map[PlayerID]bool
	for _, p := range r.Players() {
		if !r.updatePlayer(p, m) {
			if failed == nil {
				failed = make(map[PlayerID]bool)
			}
			failed[p.ID] = true
		}
	}
	// 重新取一次：Tick 中途离开的玩家不出现在本次广播；更新失败的玩家也跳过
	live := r.Players()
	if failed != nil {
		kept := live[:0]
		for _, p := range live {
			if !failed[p.ID] {
				kept = append(kept, p)
			}
		}
		live = kept
	}
	r.Broadcast(live)

	r.tickSeq.Add(1)
	r.metrics.AddTick(time.Since(start).Nanoseconds())
}

// updatePlayer 单个玩家的 panic 不影响其他玩家与本次广播
func (r *Room) updatePlayer(p *Player, m Motion) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.IncTickPanic()
			Log.Errorw("player update panic recovered", "room", r.ID, "player", p.ID, "tick", r.TickSeq(), "panic", rec)
			ok = false
		}
	}()
	p.Update(m)
	return true
}

// TickSeq 已完成的 Tick 数
func (r *Room) TickSeq() int64 { return r.tickSeq.Load() }
